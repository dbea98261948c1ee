package seller

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file is larger than 5 MB")
	ErrUnsupportedFile = errors.New("file type not supported")
	ErrEmptyFile       = errors.New("file is empty")
)

// ValidationError maps form fields to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s", k, e.Fields[k]))
	}
	return "invalid seller application: " + strings.Join(parts, "; ")
}

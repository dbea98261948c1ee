package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Response is a successful (2xx) backend response with the body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the body into dst and then checks `validate` tags, so a
// payload missing a required field is a decode failure instead of a zero value.
func (r *Response) Decode(dst any) error {
	if err := json.Unmarshal(r.Body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return checkRequired(dst)
}

// DecodeList accepts either a bare JSON array or a paginated envelope
// ({"results": [...]}).
func DecodeList[T any](r *Response) ([]T, error) {
	var items []T
	if err := json.Unmarshal(r.Body, &items); err != nil {
		var page struct {
			Results *[]T `json:"results"`
		}
		if perr := json.Unmarshal(r.Body, &page); perr != nil || page.Results == nil {
			return nil, fmt.Errorf("%w: expected a list", ErrDecode)
		}
		items = *page.Results
	}
	if items == nil {
		items = []T{}
	}
	if err := checkRequired(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func checkRequired(dst any) error {
	v := reflect.ValueOf(dst)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}

	var err error
	switch v.Kind() {
	case reflect.Struct:
		err = validate.Struct(v.Addr().Interface())
	case reflect.Slice:
		for i := 0; i < v.Len() && err == nil; i++ {
			err = checkRequired(v.Index(i).Addr().Interface())
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

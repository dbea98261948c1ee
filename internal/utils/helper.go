package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern    = regexp.MustCompile(`^[0-9+\- ]{10,15}$`)
	phoneSeparators = regexp.MustCompile(`[\s\-]+`)
	multiSpaceRegex = regexp.MustCompile(`\s+`)
)

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ValidPhone accepts 10 to 15 characters of digits, plus, dash and space.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// NormalizePhone strips spaces and dashes, keeping a leading plus sign.
func NormalizePhone(phone string) string {
	return phoneSeparators.ReplaceAllString(strings.TrimSpace(phone), "")
}

// CollapseSpaces trims and squeezes runs of whitespace, e.g. for search queries.
func CollapseSpaces(s string) string {
	return multiSpaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

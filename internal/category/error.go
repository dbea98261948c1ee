package category

import "errors"

var (
	ErrEmptyCategory    = errors.New("category is required")
	ErrCategoryNotFound = errors.New("category not found")
)

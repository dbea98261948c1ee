package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyProductID  = errors.New("product id is required")
)

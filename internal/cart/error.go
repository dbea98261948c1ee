package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("invalid cart quantity")
	ErrInvalidProduct    = errors.New("product has no id")
	ErrEmptyDiscountCode = errors.New("discount code is empty")
	ErrUnknownSource     = errors.New("unknown cart source")

	// -- Resource State --
	ErrLineNotFound = errors.New("cart line not found")
)

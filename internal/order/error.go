package order

import "errors"

var (
	// -- Validation & Input --
	ErrUnknownDeliveryMethod = errors.New("unknown delivery method")
	ErrNoItems               = errors.New("order has no items")
	ErrEmptyOrderID          = errors.New("order id is required")

	// -- Resource State --
	ErrOrderNotFound = errors.New("order not found")
	ErrNoLastOrder   = errors.New("no confirmed order to show")
)

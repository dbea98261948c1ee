package checkout

import (
	"errors"
	"fmt"
	"strings"

	"storefront-client/internal/api"
)

var (
	// -- Flow State --
	ErrEmptyCart        = errors.New("nothing to check out")
	ErrSubmitInFlight   = errors.New("order submission already in progress")
	ErrAlreadyConfirmed = errors.New("order already confirmed")
)

const genericFailure = "Something went wrong while placing your order. Please try again."

// ValidationError holds field errors keyed by json field name. It is produced
// locally and never sent to the backend.
type ValidationError struct {
	Fields map[string]string
	// First is the first invalid field in form order.
	First string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.First, e.Fields[e.First])
}

// Message is the text shown for the first invalid field.
func (e *ValidationError) Message() string {
	return e.Fields[e.First]
}

// UserMessage turns any checkout error into text fit for the buyer.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message()
	}

	switch {
	case errors.Is(err, ErrEmptyCart):
		return "Your cart is empty."
	case errors.Is(err, ErrSubmitInFlight):
		return "Your order is already being placed."
	case errors.Is(err, ErrAlreadyConfirmed):
		return "This order has already been placed."
	case errors.Is(err, api.ErrUnauthorized):
		return "Your session has expired. Please log in again."
	case errors.Is(err, api.ErrNetworkFailure):
		return "Could not reach the store. Check your connection and try again."
	}

	if apiErr, ok := api.AsError(err); ok && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return genericFailure
}

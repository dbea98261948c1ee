package user

import "errors"

var (
	// -- Authentication --
	ErrIncompleteLogin = errors.New("login response did not include both tokens")
	ErrNotLoggedIn     = errors.New("not logged in")

	// -- Validation & Input --
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyUpdate  = errors.New("nothing to update")
)

package notification

import "errors"

var (
	ErrEmptyToken      = errors.New("device token is required")
	ErrUnknownPlatform = errors.New("unknown device platform")
	ErrEmptyID         = errors.New("notification id is required")
)

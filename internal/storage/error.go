package storage

import "errors"

var (
	ErrNotFound = errors.New("storage: key not found")
	ErrCorrupt  = errors.New("storage: corrupt value")
	ErrClosed   = errors.New("storage: store closed")
)

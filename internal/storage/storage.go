// Package storage is the durable key-value store behind client state:
// credentials, the running cart, the quick-buy selection and order handoffs.
// Every value is JSON and every read goes to the backend, so the latest
// writer wins.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Store is the injected persistence surface. Remove on a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Backend is a Store that owns a connection or file handle.
type Backend interface {
	Store
	Close() error
}

// GetJSON decodes the value stored at key into dst.
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Set(ctx, key, raw)
}

// IsNotFound reports whether err means the key holds no value.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

package order

import (
	"context"
	"errors"

	"storefront-client/internal/storage"
)

// Snapshots hands the last confirmed order to the confirmation view.
type Snapshots struct {
	store storage.Store
}

func NewSnapshots(store storage.Store) *Snapshots {
	return &Snapshots{store: store}
}

func (s *Snapshots) Save(ctx context.Context, o *Order) error {
	return storage.SetJSON(ctx, s.store, storage.KeyLastOrder, o)
}

// Last returns ErrNoLastOrder when nothing usable is stored.
func (s *Snapshots) Last(ctx context.Context) (*Order, error) {
	var o Order
	err := storage.GetJSON(ctx, s.store, storage.KeyLastOrder, &o)
	switch {
	case err == nil:
	case storage.IsNotFound(err), errors.Is(err, storage.ErrCorrupt):
		return nil, ErrNoLastOrder
	default:
		return nil, err
	}
	if o.ID == "" {
		return nil, ErrNoLastOrder
	}
	return &o, nil
}

func (s *Snapshots) Clear(ctx context.Context) error {
	return s.store.Remove(ctx, storage.KeyLastOrder)
}

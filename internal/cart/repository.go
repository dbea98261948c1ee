package cart

import (
	"context"
	"errors"

	"storefront-client/internal/logger"
	"storefront-client/internal/storage"

	"go.uber.org/zap"
)

// Repository persists cart state. Reads always hit the store.
type Repository interface {
	GetLines(ctx context.Context) ([]Line, error)
	SaveLines(ctx context.Context, lines []Line) error
	GetSelection(ctx context.Context) (*Selection, error)
	SaveSelection(ctx context.Context, s Selection) error
	RemoveSelection(ctx context.Context) error
	GetDiscountCode(ctx context.Context) (*DiscountCode, error)
	SaveDiscountCode(ctx context.Context, d DiscountCode) error
	RemoveDiscountCode(ctx context.Context) error
}

type repository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &repository{store: store}
}

// GetLines returns an empty cart when nothing is stored or the stored value
// cannot be parsed.
func (r *repository) GetLines(ctx context.Context) ([]Line, error) {
	var lines []Line
	err := storage.GetJSON(ctx, r.store, storage.KeyCart, &lines)
	switch {
	case err == nil:
	case storage.IsNotFound(err):
		return []Line{}, nil
	case errors.Is(err, storage.ErrCorrupt):
		logger.FromCtx(ctx).Warn("stored cart unreadable, starting empty", zap.Error(err))
		return []Line{}, nil
	default:
		return nil, err
	}

	valid := lines[:0]
	for _, l := range lines {
		if l.ID == "" || l.Product.ID == "" || l.Quantity < 1 {
			continue
		}
		valid = append(valid, l)
	}
	if valid == nil {
		valid = []Line{}
	}
	return valid, nil
}

func (r *repository) SaveLines(ctx context.Context, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	return storage.SetJSON(ctx, r.store, storage.KeyCart, lines)
}

func (r *repository) GetSelection(ctx context.Context) (*Selection, error) {
	var s Selection
	err := storage.GetJSON(ctx, r.store, storage.KeyQuickBuy, &s)
	switch {
	case err == nil:
	case storage.IsNotFound(err):
		return nil, nil
	case errors.Is(err, storage.ErrCorrupt):
		logger.FromCtx(ctx).Warn("stored quick-buy selection unreadable", zap.Error(err))
		return nil, nil
	default:
		return nil, err
	}
	if s.Product.ID == "" || s.Quantity < 1 {
		return nil, nil
	}
	return &s, nil
}

func (r *repository) SaveSelection(ctx context.Context, s Selection) error {
	return storage.SetJSON(ctx, r.store, storage.KeyQuickBuy, s)
}

func (r *repository) RemoveSelection(ctx context.Context) error {
	return r.store.Remove(ctx, storage.KeyQuickBuy)
}

func (r *repository) GetDiscountCode(ctx context.Context) (*DiscountCode, error) {
	var d DiscountCode
	err := storage.GetJSON(ctx, r.store, storage.KeyDiscountCode, &d)
	switch {
	case err == nil:
	case storage.IsNotFound(err), errors.Is(err, storage.ErrCorrupt):
		return nil, nil
	default:
		return nil, err
	}
	if d.Code == "" {
		return nil, nil
	}
	return &d, nil
}

func (r *repository) SaveDiscountCode(ctx context.Context, d DiscountCode) error {
	return storage.SetJSON(ctx, r.store, storage.KeyDiscountCode, d)
}

func (r *repository) RemoveDiscountCode(ctx context.Context) error {
	return r.store.Remove(ctx, storage.KeyDiscountCode)
}

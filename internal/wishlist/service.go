package wishlist

import (
	"context"
	"strings"
	"sync"

	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

// Service keeps a local view of which products are wishlisted so toggles
// can apply immediately and roll back when the backend refuses.
type Service struct {
	repo Repository

	mu     sync.Mutex
	saved  map[string]bool
	synced bool
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, saved: make(map[string]bool)}
}

// List fetches the wishlist and resets the local view to it.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list wishlist", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.saved = make(map[string]bool, len(items))
	for _, it := range items {
		s.saved[it.Product.ID] = true
	}
	s.synced = true
	s.mu.Unlock()

	return items, nil
}

// Contains reports the local view, loading it on first use.
func (s *Service) Contains(ctx context.Context, productID string) (bool, error) {
	s.mu.Lock()
	synced := s.synced
	s.mu.Unlock()

	if !synced {
		if _, err := s.List(ctx); err != nil {
			return false, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved[productID], nil
}

func (s *Service) Add(ctx context.Context, productID string) error {
	_, err := s.set(ctx, productID, true)
	return err
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	_, err := s.set(ctx, productID, false)
	return err
}

// Toggle flips productID and returns the new state. On failure the previous
// state is restored and returned with the error.
func (s *Service) Toggle(ctx context.Context, productID string) (bool, error) {
	current, err := s.Contains(ctx, strings.TrimSpace(productID))
	if err != nil {
		return false, err
	}
	return s.set(ctx, productID, !current)
}

func (s *Service) set(ctx context.Context, productID string, want bool) (bool, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return false, ErrEmptyProductID
	}

	s.mu.Lock()
	prev := s.saved[productID]
	s.saved[productID] = want
	s.mu.Unlock()

	var err error
	if want {
		err = s.repo.Add(ctx, productID)
	} else {
		err = s.repo.Remove(ctx, productID)
	}

	if err != nil {
		s.mu.Lock()
		s.saved[productID] = prev
		s.mu.Unlock()

		logger.FromCtx(ctx).Warn("wishlist update rolled back",
			zap.String("product_id", productID),
			zap.Bool("wanted", want),
			zap.Error(err),
		)
		return prev, err
	}
	return want, nil
}

package product

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, opts ListOptions) ([]Product, error)
	Search(ctx context.Context, term string) ([]Product, error)
	Get(ctx context.Context, id string) (*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ListProducts"),
	)
	start := time.Now()

	log.Debug("list products requested",
		zap.String("category", opts.Category),
		zap.String("search", opts.Search),
		zap.String("status", opts.Status),
	)

	products, err := s.repo.List(ctx, opts)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	for i := range products {
		normalize(&products[i])
	}

	log.Info("list products success",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return products, nil
}

// Search is List filtered by a free text term. A blank term lists everything.
func (s *service) Search(ctx context.Context, term string) ([]Product, error) {
	return s.List(ctx, ListOptions{Search: term})
}

func (s *service) Get(ctx context.Context, id string) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProduct"),
		zap.String("product_id", id),
	)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyProductID
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apiErr, ok := api.AsError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			log.Info("product not found")
			return nil, ErrProductNotFound
		}
		log.Error("failed to fetch product", zap.Error(err))
		return nil, err
	}

	normalize(p)
	return p, nil
}

// IsNotFound reports whether err means the product does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound)
}

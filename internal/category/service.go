package category

import (
	"context"
	"strings"

	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	GetCategories(ctx context.Context) ([]*Category, error)
	// Resolve finds a category by id, slug or case-insensitive name.
	Resolve(ctx context.Context, ref string) (*Category, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, err := s.repo.GetCategories(ctx)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if len(categories) == 0 {
		log.Info("no categories found")
		return []*Category{}, nil
	}

	log.Info("GetCategories success", zap.Int("count", len(categories)))
	return categories, nil
}

func (s *service) Resolve(ctx context.Context, ref string) (*Category, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrEmptyCategory
	}

	categories, err := s.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	for _, c := range categories {
		if c.ID == ref || (c.Slug != "" && c.Slug == ref) || strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return nil, ErrCategoryNotFound
}

package review

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, productID string) ([]Review, error)
	Create(ctx context.Context, productID string, in CreateInput) (*Review, error)
	Like(ctx context.Context, reviewID string) (int, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// List returns reviews newest first.
func (s *service) List(ctx context.Context, productID string) ([]Review, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrEmptyID
	}

	reviews, err := s.repo.List(ctx, productID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list reviews", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}

	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *service) Create(ctx context.Context, productID string, in CreateInput) (*Review, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, ErrEmptyID
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(in.Comment) > 2000 {
		return nil, ErrCommentTooLong
	}

	r, err := s.repo.Create(ctx, productID, in)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to create review", zap.String("product_id", productID), zap.Error(err))
		return nil, err
	}
	return r, nil
}

func (s *service) Like(ctx context.Context, reviewID string) (int, error) {
	reviewID = strings.TrimSpace(reviewID)
	if reviewID == "" {
		return 0, ErrEmptyID
	}
	return s.repo.Like(ctx, reviewID)
}

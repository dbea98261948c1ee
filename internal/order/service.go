package order

import (
	"context"
	"net/http"
	"strings"
	"time"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Place(ctx context.Context, sub Submission) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	Last(ctx context.Context) (*Order, error)
	ClearLast(ctx context.Context) error
}

type service struct {
	repo      Repository
	snapshots *Snapshots
}

func NewService(repo Repository, snapshots *Snapshots) Service {
	return &service{repo: repo, snapshots: snapshots}
}

// Place submits the order and keeps the confirmed record as the last order.
func (s *service) Place(ctx context.Context, sub Submission) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.String("delivery_method", sub.DeliveryMethod),
		zap.Int("items", len(sub.Items)),
	)
	start := time.Now()

	if len(sub.Items) == 0 {
		return nil, ErrNoItems
	}

	o, err := s.repo.Create(ctx, sub)
	if err != nil {
		log.Error("failed to place order",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	if o.Total != sub.Total {
		log.Info("backend total differs from local total",
			zap.Float64("local_total", sub.Total),
			zap.Float64("order_total", o.Total),
		)
	}

	if s.snapshots != nil {
		if err := s.snapshots.Save(ctx, o); err != nil {
			log.Warn("failed to store last order", zap.Error(err))
		}
	}

	log.Info("order placed",
		zap.String("order_id", string(o.ID)),
		zap.String("status", string(o.Status)),
		zap.Duration("duration", time.Since(start)),
	)
	return o, nil
}

func (s *service) List(ctx context.Context) ([]Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to list orders", zap.Error(err))
		return nil, err
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyOrderID
	}

	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if apiErr, ok := api.AsError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			return nil, ErrOrderNotFound
		}
		logger.FromCtx(ctx).Error("failed to get order", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}
	return o, nil
}

func (s *service) Last(ctx context.Context) (*Order, error) {
	if s.snapshots == nil {
		return nil, ErrNoLastOrder
	}
	return s.snapshots.Last(ctx)
}

// ClearLast forgets the last confirmed order kept on this device.
func (s *service) ClearLast(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	return s.snapshots.Clear(ctx)
}

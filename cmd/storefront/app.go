package main

import (
	"context"
	"fmt"

	"storefront-client/internal/api"
	"storefront-client/internal/auth"
	"storefront-client/internal/cart"
	"storefront-client/internal/category"
	"storefront-client/internal/checkout"
	"storefront-client/internal/config"
	"storefront-client/internal/metrics"
	"storefront-client/internal/notification"
	"storefront-client/internal/order"
	"storefront-client/internal/product"
	"storefront-client/internal/review"
	"storefront-client/internal/seller"
	"storefront-client/internal/storage"
	"storefront-client/internal/user"
	"storefront-client/internal/wishlist"

	"github.com/prometheus/client_golang/prometheus"
)

// app holds the wired services for one CLI invocation.
type app struct {
	cfg      *config.Config
	store    storage.Backend
	registry *prometheus.Registry

	users         user.Service
	products      product.Service
	categories    category.Service
	carts         *cart.Manager
	orders        order.Service
	wishlist      *wishlist.Service
	reviews       review.Service
	notifications notification.Service
	sellers       seller.Service
}

func newApp(ctx context.Context, cfg *config.Config, notify cart.Notifier) (*app, error) {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	registry := prometheus.NewRegistry()
	session := auth.NewSession(store)
	client := api.New(api.Options{
		BaseURL:         cfg.APIBaseURL,
		Timeout:         cfg.APITimeout,
		RateLimit:       cfg.APIRateLimit,
		RateBurst:       cfg.APIRateBurst,
		CoalesceRefresh: cfg.CoalesceRefresh,
		Metrics:         metrics.NewGateway(registry),
	}, session)

	return &app{
		cfg:           cfg,
		store:         store,
		registry:      registry,
		users:         user.NewService(user.NewRepository(client, store), session),
		products:      product.NewService(product.NewRepository(client)),
		categories:    category.NewService(category.NewRepository(client)),
		carts:         cart.NewManager(cart.NewRepository(store), cart.WithNotifier(notify)),
		orders:        order.NewService(order.NewRepository(client), order.NewSnapshots(store)),
		wishlist:      wishlist.NewService(wishlist.NewRepository(client)),
		reviews:       review.NewService(review.NewRepository(client)),
		notifications: notification.NewService(client),
		sellers:       seller.NewService(client),
	}, nil
}

// newFlow starts a submission cycle for the given cart source.
func (a *app) newFlow(src cart.Source) *checkout.Flow {
	return checkout.NewFlow(src, a.carts, a.orders, a.users.BuyerID)
}

func (a *app) Close() error {
	return a.store.Close()
}

package cart

import (
	"context"

	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

// Notifier shows a short confirmation to the user.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) {
	f(ctx, message)
}

type logNotifier struct{}

func (logNotifier) Notify(ctx context.Context, message string) {
	logger.FromCtx(ctx).Info("cart notification", zap.String("message", message))
}

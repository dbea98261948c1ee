package notification

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"storefront-client/internal/api"
	"storefront-client/internal/logger"

	"go.uber.org/zap"
)

// Service registers push devices and reads the notification history. Push
// delivery itself happens outside this client.
type Service interface {
	RegisterDevice(ctx context.Context, token, platform string) error
	List(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	api api.Doer
}

func NewService(client api.Doer) Service {
	return &service{api: client}
}

func (s *service) RegisterDevice(ctx context.Context, token, platform string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	platform = strings.ToLower(strings.TrimSpace(platform))
	if platform == "" {
		platform = PlatformWeb
	}
	switch platform {
	case PlatformWeb, PlatformAndroid, PlatformIOS:
	default:
		return ErrUnknownPlatform
	}

	_, err := s.api.Do(ctx, http.MethodPost, "/notifications/devices/", Device{Token: token, Platform: platform})
	if err != nil {
		logger.FromCtx(ctx).Warn("device registration failed", zap.String("platform", platform), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]Notification, error) {
	resp, err := s.api.Do(ctx, http.MethodGet, "/notifications/", nil)
	if err != nil {
		return nil, err
	}
	return api.DecodeList[Notification](resp)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyID
	}
	_, err := s.api.Do(ctx, http.MethodPost, "/notifications/"+url.PathEscape(id)+"/read/", nil)
	return err
}

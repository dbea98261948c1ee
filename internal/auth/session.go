package auth

import (
	"context"
	"fmt"

	"storefront-client/internal/logger"
	"storefront-client/internal/storage"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Credentials is the persisted access/refresh token pair.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

func (c Credentials) Complete() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// Session persists credentials in durable storage. Every call reads the
// store, nothing is cached.
type Session struct {
	store storage.Store
}

func NewSession(store storage.Store) *Session {
	return &Session{store: store}
}

// Credentials returns whatever tokens are stored; missing ones come back empty.
func (s *Session) Credentials(ctx context.Context) (Credentials, error) {
	access, err := s.token(ctx, storage.KeyAccessToken)
	if err != nil {
		return Credentials{}, err
	}
	refresh, err := s.token(ctx, storage.KeyRefreshToken)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *Session) AccessToken(ctx context.Context) (string, error) {
	return s.token(ctx, storage.KeyAccessToken)
}

func (s *Session) RefreshToken(ctx context.Context) (string, error) {
	return s.token(ctx, storage.KeyRefreshToken)
}

// Save stores both tokens or neither.
func (s *Session) Save(ctx context.Context, c Credentials) error {
	if !c.Complete() {
		return ErrIncompleteCredentials
	}

	if err := storage.SetJSON(ctx, s.store, storage.KeyAccessToken, c.AccessToken); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	if err := storage.SetJSON(ctx, s.store, storage.KeyRefreshToken, c.RefreshToken); err != nil {
		// Roll back so a half-written pair never survives.
		if rmErr := s.store.Remove(ctx, storage.KeyAccessToken); rmErr != nil {
			logger.FromCtx(ctx).Error("failed to roll back access token", zap.Error(rmErr))
		}
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Clear deletes both tokens.
func (s *Session) Clear(ctx context.Context) error {
	return multierr.Combine(
		s.store.Remove(ctx, storage.KeyAccessToken),
		s.store.Remove(ctx, storage.KeyRefreshToken),
	)
}

func (s *Session) token(ctx context.Context, key string) (string, error) {
	var v string
	err := storage.GetJSON(ctx, s.store, key, &v)
	if storage.IsNotFound(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

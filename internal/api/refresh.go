package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storefront-client/internal/auth"
	"storefront-client/internal/logger"
	"storefront-client/internal/metrics"

	"go.uber.org/zap"
)

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access       string `json:"access"`
	Refresh      string `json:"refresh"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (r refreshResponse) tokens() (access, refresh string) {
	access, refresh = r.Access, r.Refresh
	if access == "" {
		access = r.AccessToken
	}
	if refresh == "" {
		refresh = r.RefreshToken
	}
	return access, refresh
}

func (c *Client) refresh(ctx context.Context) error {
	if !c.coalesce {
		return c.refreshTokens(ctx)
	}

	// The shared refresh outlives any single caller; each caller waits on
	// its own context.
	ch := c.group.DoChan("refresh", func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.httpClient.Timeout)
		defer cancel()
		return nil, c.refreshTokens(shared)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// refreshTokens exchanges the stored refresh token for a new pair. On
// failure both stored tokens are removed, unless ctx ended first.
func (c *Client) refreshTokens(ctx context.Context) (err error) {
	defer func() {
		if err == nil {
			c.metrics.ObserveRefresh(metrics.RefreshSucceeded)
			return
		}
		c.metrics.ObserveRefresh(metrics.RefreshFailed)
		if ctx.Err() != nil {
			logger.FromCtx(ctx).Info("token refresh interrupted, keeping credentials", zap.Error(err))
			return
		}
		if clearErr := c.creds.Clear(ctx); clearErr != nil {
			logger.FromCtx(ctx).Error("failed to clear credentials", zap.Error(clearErr))
		}
	}()

	stored, err := c.creds.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("read refresh token: %w", err)
	}
	if stored == "" {
		return errNoRefreshToken
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(refreshRequest{Refresh: stored})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(c.refreshPath), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	resp, err := c.exchange(req)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", errRefreshRejected, resp.StatusCode)
	}

	var body refreshResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	access, refresh := body.tokens()
	if access == "" {
		return errRefreshMissingAuth
	}
	if refresh == "" {
		refresh = stored
	}

	return c.creds.Save(ctx, auth.Credentials{AccessToken: access, RefreshToken: refresh})
}

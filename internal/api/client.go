package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront-client/internal/auth"
	"storefront-client/internal/logger"
	"storefront-client/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const (
	DefaultRefreshPath = "/auth/token/refresh/"

	contentTypeJSON = "application/json"

	// maxAttempts is the original send plus one resend after a refresh.
	maxAttempts = 2
)

// Doer is the surface the service clients depend on.
type Doer interface {
	Do(ctx context.Context, method, path string, body any) (*Response, error)
	DoMultipart(ctx context.Context, method, path string, form *MultipartForm) (*Response, error)
}

// CredentialStore is the persisted token pair the gateway reads and rotates.
type CredentialStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	Save(ctx context.Context, c auth.Credentials) error
	Clear(ctx context.Context) error
}

type Options struct {
	BaseURL     string
	RefreshPath string
	Timeout     time.Duration
	// RateLimit is requests per second; zero or less disables throttling.
	RateLimit float64
	RateBurst int
	// CoalesceRefresh shares one in-flight refresh between concurrent 401s.
	CoalesceRefresh bool
	// Transport overrides the underlying round tripper (tests).
	Transport http.RoundTripper
	Metrics   *metrics.Gateway
}

// Client is the single chokepoint for backend calls. It attaches the stored
// bearer token, and on a 401 refreshes the token pair once and resends once.
type Client struct {
	baseURL     string
	refreshPath string
	httpClient  *http.Client
	creds       CredentialStore
	limiter     *rate.Limiter
	coalesce    bool
	group       singleflight.Group
	metrics     *metrics.Gateway
}

func New(opts Options, creds CredentialStore) *Client {
	if opts.BaseURL == "" {
		logger.L().Warn("API base URL is empty")
	}

	refreshPath := opts.RefreshPath
	if refreshPath == "" {
		refreshPath = DefaultRefreshPath
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	limit := rate.Inf
	burst := opts.RateBurst
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
		if burst <= 0 {
			burst = 1
		}
	}

	return &Client{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		refreshPath: refreshPath,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: logger.NewTransport(opts.Transport),
		},
		creds:    creds,
		limiter:  rate.NewLimiter(limit, burst),
		coalesce: opts.CoalesceRefresh,
		metrics:  opts.Metrics,
	}
}

// call is an encoded request that can be sent more than once.
type call struct {
	method      string
	path        string
	body        []byte
	contentType string
}

// attempt numbers a send of a call: 1 for the original, 2 for the resend
// after a successful refresh.
type attempt struct {
	call *call
	n    int
}

func (a attempt) retry() attempt {
	return attempt{call: a.call, n: a.n + 1}
}

// Do sends a JSON request. body may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	cl := &call{method: method, path: path, contentType: contentTypeJSON}
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		cl.body = raw
	}
	return c.execute(ctx, cl)
}

// DoMultipart sends a multipart/form-data request. Only the content type
// differs from Do; the refresh contract is the same.
func (c *Client) DoMultipart(ctx context.Context, method, path string, form *MultipartForm) (*Response, error) {
	if form == nil {
		form = NewMultipartForm()
	}
	raw, contentType, err := form.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode multipart body: %w", err)
	}
	return c.execute(ctx, &call{method: method, path: path, body: raw, contentType: contentType})
}

func (c *Client) execute(ctx context.Context, cl *call) (*Response, error) {
	timer := metrics.StartTimer()
	resp, err := c.send(ctx, attempt{call: cl, n: 1})
	c.metrics.ObserveRequest(cl.method, outcomeOf(err), timer)
	return resp, err
}

func (c *Client) send(ctx context.Context, at attempt) (*Response, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", at.call.method),
		zap.String("path", at.call.path),
		zap.Int("attempt", at.n),
	)

	resp, err := c.roundTrip(ctx, at)
	if err != nil {
		log.Warn("backend unreachable", zap.Error(err))
		return nil, networkError(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	apiErr := errorFromResponse(resp)
	if resp.StatusCode != http.StatusUnauthorized || at.n >= maxAttempts {
		log.Info("backend returned error", zap.Int("status", resp.StatusCode), zap.String("kind", apiErr.Kind.String()))
		return nil, apiErr
	}

	if err := c.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			log.Info("request cancelled during token refresh", zap.Error(err))
			return nil, networkError(ctx.Err())
		}
		// The refresh failure detail stays internal; the caller sees the original 401.
		log.Warn("token refresh failed", zap.Error(err))
		return nil, apiErr
	}

	log.Info("token refreshed, resending request")
	return c.send(ctx, at.retry())
}

func (c *Client) roundTrip(ctx context.Context, at attempt) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := c.creds.AccessToken(ctx)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to read access token", zap.Error(err))
		token = ""
	}

	var body io.Reader = http.NoBody
	if at.call.body != nil {
		body = bytes.NewReader(at.call.body)
	}

	req, err := http.NewRequestWithContext(ctx, at.call.method, c.url(at.call.path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", auth.BearerHeader(token))
	req.Header.Set("Content-Type", at.call.contentType)
	req.Header.Set("Accept", contentTypeJSON)

	return c.exchange(req)
}

func (c *Client) exchange(req *http.Request) (*Response, error) {
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       bodyBytes,
	}, nil
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func outcomeOf(err error) string {
	apiErr, ok := AsError(err)
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case !ok:
		return metrics.OutcomeNetwork
	case apiErr.Kind == KindUnauthorized:
		return metrics.OutcomeUnauthorized
	case apiErr.Kind == KindBackendRejected:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeNetwork
	}
}

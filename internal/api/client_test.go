package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront-client/internal/auth"
	"storefront-client/internal/metrics"
	"storefront-client/internal/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// fakeBackend serves /products/ (requires a valid bearer token) and the
// refresh endpoint.
type fakeBackend struct {
	mu            sync.Mutex
	validToken    string
	refreshStatus int
	refreshBody   string
	refreshDelay  time.Duration
	resourceCalls int32
	refreshCalls  int32
	seenTokens    []string
	refreshSent   []string
	// always401 makes the resource reject even a fresh token.
	always401 bool
}

func (b *fakeBackend) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(DefaultRefreshPath, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.refreshCalls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))

		var req refreshRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.refreshSent = append(b.refreshSent, req.Refresh)
		b.mu.Unlock()

		if b.refreshDelay > 0 {
			time.Sleep(b.refreshDelay)
		}
		w.WriteHeader(b.refreshStatus)
		_, _ = io.WriteString(w, b.refreshBody)
	})

	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&b.resourceCalls, 1)
		token := auth.ExtractAccessToken(r)

		b.mu.Lock()
		b.seenTokens = append(b.seenTokens, token)
		valid := b.validToken
		b.mu.Unlock()

		if b.always401 || token != valid {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"detail":"Given token not valid for any token type"}`)
			return
		}
		_, _ = io.WriteString(w, `[{"id":"p1","name":"Lamp"}]`)
	})

	return mux
}

func newTestClient(t *testing.T, b *fakeBackend, opts Options) (*Client, *auth.Session, *storage.Memory) {
	t.Helper()
	srv := httptest.NewServer(b.handler(t))
	t.Cleanup(srv.Close)

	store := storage.NewMemory()
	session := auth.NewSession(store)
	opts.BaseURL = srv.URL
	return New(opts, session), session, store
}

func saveCreds(t *testing.T, s *auth.Session, access, refresh string) {
	t.Helper()
	require.NoError(t, s.Save(context.Background(), auth.Credentials{AccessToken: access, RefreshToken: refresh}))
}

func TestClient_AttachesCredentials(t *testing.T) {
	b := &fakeBackend{validToken: "a1"}
	c, session, _ := newTestClient(t, b, Options{})
	saveCreds(t, session, "a1", "r1")

	resp, err := c.Do(context.Background(), http.MethodGet, "/products/", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"a1"}, b.seenTokens)
	assert.Equal(t, int32(0), b.refreshCalls)
}

func TestClient_Headers(t *testing.T) {
	var got http.Header
	c := New(Options{
		BaseURL: "http://shop.test/api/",
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			got = r.Header.Clone()
			assert.Equal(t, "http://shop.test/api/orders/", r.URL.String())
			return &http.Response{StatusCode: http.StatusCreated, Body: io.NopCloser(strings.NewReader(`{}`)), Header: make(http.Header)}, nil
		}),
	}, auth.NewSession(storage.NewMemory()))

	t.Run("JSON without stored token", func(t *testing.T) {
		_, err := c.Do(context.Background(), http.MethodPost, "orders/", map[string]int{"q": 1})
		require.NoError(t, err)

		assert.Equal(t, "Bearer ", got.Get("Authorization"))
		assert.Equal(t, "application/json", got.Get("Content-Type"))
		assert.Equal(t, "application/json", got.Get("Accept"))
		assert.NotEmpty(t, got.Get("X-Request-ID"))
	})

	t.Run("Multipart", func(t *testing.T) {
		form := NewMultipartForm().Field("name", "Ana").File("logo", "logo.png", []byte("png"))
		_, err := c.DoMultipart(context.Background(), http.MethodPost, "/orders/", form)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(got.Get("Content-Type"), "multipart/form-data; boundary="))
		assert.Equal(t, "application/json", got.Get("Accept"))
	})
}

func TestClient_RefreshThenRetry(t *testing.T) {
	b := &fakeBackend{
		validToken:    "a2",
		refreshStatus: http.StatusOK,
		refreshBody:   `{"access":"a2","refresh":"r2"}`,
	}
	c, session, _ := newTestClient(t, b, Options{})
	saveCreds(t, session, "expired", "r1")

	resp, err := c.Do(context.Background(), http.MethodGet, "/products/", nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"expired", "a2"}, b.seenTokens, "resent exactly once with the new token")
	assert.Equal(t, []string{"r1"}, b.refreshSent)

	creds, _ := session.Credentials(context.Background())
	assert.Equal(t, auth.Credentials{AccessToken: "a2", RefreshToken: "r2"}, creds)
}

func TestClient_RefreshKeepsRefreshTokenWhenNotRotated(t *testing.T) {
	b := &fakeBackend{
		validToken:    "a2",
		refreshStatus: http.StatusOK,
		refreshBody:   `{"access_token":"a2"}`,
	}
	c, session, _ := newTestClient(t, b, Options{})
	saveCreds(t, session, "expired", "r1")

	_, err := c.Do(context.Background(), http.MethodGet, "/products/", nil)
	require.NoError(t, err)

	creds, _ := session.Credentials(context.Background())
	assert.Equal(t, auth.Credentials{AccessToken: "a2", RefreshToken: "r1"}, creds)
}

func TestClient_NoSecondRefresh(t *testing.T) {
	b := &fakeBackend{
		always401:     true,
		refreshStatus: http.StatusOK,
		refreshBody:   `{"access":"a2","refresh":"r2"}`,
	}
	c, session, _ := newTestClient(t, b, Options{})
	saveCreds(t, session, "expired", "r1")

	_, err := c.Do(context.Background(), http.MethodGet, "/products/", nil)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(2), b.resourceCalls)
	assert.Equal(t, int32(1), b.refreshCalls)

	creds, _ := session.Credentials(context.Background())
	assert.Equal(t, "a2", creds.AccessToken, "successful refresh is kept even though the resend failed")
}

func TestClient_RefreshFailureClearsCredentials(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		refresh string
	}{
		{name: "Rejected", status: http.StatusUnauthorized, body: `{"detail":"Token is blacklisted"}`, refresh: "r1"},
		{name: "Server error", status: http.StatusInternalServerError, body: `oops`, refresh: "r1"},
		{name: "Missing access token", status: http.StatusOK, body: `{"refresh":"r2"}`, refresh: "r1"},
		{name: "Garbage body", status: http.StatusOK, body: `<html>`, refresh: "r1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &fakeBackend{validToken: "a2", refreshStatus: tt.status, refreshBody: tt.body}
			c, session, store := newTestClient(t, b, Options{})
			saveCreds(t, session, "expired", tt.refresh)
			require.NoError(t, store.Set(context.Background(), storage.KeyCart, []byte(`[]`)))

			_, err := c.Do(context.Background(), http.MethodGet, "/products/", nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnauthorized)
			apiErr, ok := AsError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
			assert.Equal(t, "Given token not valid for any token type", apiErr.Message, "original 401 is surfaced")

			assert.Equal(t, int32(1), b.resourceCalls, "no resend after failed refresh")
			assert.Equal(t, []string{storage.KeyCart}, store.Keys(), "both credentials removed, nothing else")
		})
	}
}

func TestClient_RefreshWithoutStoredToken(t *testing.T) {
	b := &fakeBackend{validToken: "a2", refreshStatus: http.StatusOK, refreshBody: `{"access":"a2"}`}
	c, _, _ := newTestClient(t, b, Options{})

	_, err := c.Do(context.Background(), http.MethodGet, "/products/", nil)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(0), b.refreshCalls)
}

func TestClient_RefreshNetworkFailure(t *testing.T) {
	store := storage.NewMemory()
	session := auth.NewSession(store)
	saveCreds(t, session, "expired", "r1")

	c := New(Options{
		BaseURL: "http://shop.test",
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path == DefaultRefreshPath {
				return nil, errors.New("connection reset")
			}
			return &http.Response{StatusCode: http.StatusUnauthorized, Body: io.NopCloser(strings.NewReader(`{}`)), Header: make(http.Header)}, nil
		}),
	}, session)

	_, err := c.Do(context.Background(), http.MethodGet, "/orders/", nil)

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrNetworkFailure)
	assert.Empty(t, store.Keys())
}

func TestClient_NonUnauthorizedFailures(t *testing.T) {
	t.Run("BackendRejected", func(t *testing.T) {
		var refreshHit bool
		c := New(Options{
			BaseURL: "http://shop.test",
			Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				if r.URL.Path == DefaultRefreshPath {
					refreshHit = true
				}
				return &http.Response{
					StatusCode: http.StatusBadRequest,
					Body:       io.NopCloser(strings.NewReader(`{"phone":["Enter a valid phone number."]}`)),
					Header:     make(http.Header),
				}, nil
			}),
		}, auth.NewSession(storage.NewMemory()))

		_, err := c.Do(context.Background(), http.MethodPost, "/orders/", map[string]string{})

		assert.ErrorIs(t, err, ErrBackendRejected)
		assert.False(t, refreshHit)
		apiErr, _ := AsError(err)
		assert.Equal(t, "phone: Enter a valid phone number.", apiErr.Message)
		assert.JSONEq(t, `{"phone":["Enter a valid phone number."]}`, string(apiErr.Payload))
	})

	t.Run("NetworkFailure", func(t *testing.T) {
		c := New(Options{
			BaseURL: "http://shop.test",
			Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			}),
		}, auth.NewSession(storage.NewMemory()))

		_, err := c.Do(context.Background(), http.MethodGet, "/products/", nil)

		assert.ErrorIs(t, err, ErrNetworkFailure)
		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("Canceled context", func(t *testing.T) {
		c := New(Options{BaseURL: "http://shop.test", RateLimit: 1, RateBurst: 1}, auth.NewSession(storage.NewMemory()))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.Do(ctx, http.MethodGet, "/products/", nil)
		assert.ErrorIs(t, err, ErrNetworkFailure)
	})
}

func TestClient_MultipartRetriesSameBody(t *testing.T) {
	var bodies []string
	var tokens []string
	store := storage.NewMemory()
	session := auth.NewSession(store)
	saveCreds(t, session, "expired", "r1")

	c := New(Options{
		BaseURL: "http://shop.test",
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Path == DefaultRefreshPath {
				return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(`{"access":"a2","refresh":"r2"}`)), Header: make(http.Header)}, nil
			}
			raw, _ := io.ReadAll(r.Body)
			bodies = append(bodies, string(raw))
			tokens = append(tokens, auth.ExtractAccessToken(r))
			status := http.StatusCreated
			if len(bodies) == 1 {
				status = http.StatusUnauthorized
			}
			return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(`{"id":"app-1"}`)), Header: make(http.Header)}, nil
		}),
	}, session)

	form := NewMultipartForm().Field("store_name", "Casa Luna").File("logo", "logo.png", []byte("\x89PNG"))
	resp, err := c.DoMultipart(context.Background(), http.MethodPost, "/sellers/applications/", form)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, bodies, 2)
	assert.Equal(t, bodies[0], bodies[1])
	assert.Contains(t, bodies[0], "Casa Luna")
	assert.Equal(t, []string{"expired", "a2"}, tokens)
}

func TestClient_ConcurrentRefresh(t *testing.T) {
	run := func(t *testing.T, coalesce bool) int32 {
		b := &fakeBackend{
			validToken:    "fresh",
			refreshStatus: http.StatusOK,
			refreshBody:   `{"access":"fresh","refresh":"r2"}`,
			refreshDelay:  100 * time.Millisecond,
		}
		c, session, _ := newTestClient(t, b, Options{CoalesceRefresh: coalesce})
		saveCreds(t, session, "stale", "r1")

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = c.Do(context.Background(), http.MethodGet, "/products/", nil)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
		return atomic.LoadInt32(&b.refreshCalls)
	}

	t.Run("Independent refreshes by default", func(t *testing.T) {
		assert.Equal(t, int32(2), run(t, false))
	})

	t.Run("Coalesced", func(t *testing.T) {
		assert.Equal(t, int32(1), run(t, true))
	})
}

func TestClient_RefreshOutlivesCancelledCaller(t *testing.T) {
	newBackend := func() *fakeBackend {
		return &fakeBackend{
			validToken:    "fresh",
			refreshStatus: http.StatusOK,
			refreshBody:   `{"access":"fresh","refresh":"r2"}`,
			refreshDelay:  200 * time.Millisecond,
		}
	}

	t.Run("Coalesced", func(t *testing.T) {
		b := newBackend()
		c, session, _ := newTestClient(t, b, Options{CoalesceRefresh: true})
		saveCreds(t, session, "stale", "r1")

		short, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()

		var wg sync.WaitGroup
		var errShort, errLong error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, errShort = c.Do(short, http.MethodGet, "/products/", nil)
		}()
		go func() {
			defer wg.Done()
			time.Sleep(10 * time.Millisecond)
			_, errLong = c.Do(context.Background(), http.MethodGet, "/products/", nil)
		}()
		wg.Wait()

		assert.ErrorIs(t, errShort, context.DeadlineExceeded)
		assert.NotErrorIs(t, errShort, ErrUnauthorized)
		assert.NoError(t, errLong)
		assert.Equal(t, int32(1), atomic.LoadInt32(&b.refreshCalls))

		creds, err := session.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, auth.Credentials{AccessToken: "fresh", RefreshToken: "r2"}, creds)
	})

	t.Run("CancelledCallerKeepsCredentials", func(t *testing.T) {
		b := newBackend()
		c, session, _ := newTestClient(t, b, Options{})
		saveCreds(t, session, "stale", "r1")

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
		defer cancel()

		_, err := c.Do(ctx, http.MethodGet, "/products/", nil)

		assert.ErrorIs(t, err, ErrNetworkFailure)
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		creds, err := session.Credentials(context.Background())
		require.NoError(t, err)
		assert.Equal(t, auth.Credentials{AccessToken: "stale", RefreshToken: "r1"}, creds)
	})
}

func TestClient_Metrics(t *testing.T) {
	b := &fakeBackend{
		validToken:    "a2",
		refreshStatus: http.StatusOK,
		refreshBody:   `{"access":"a2","refresh":"r2"}`,
	}
	m := metrics.NewGateway(prometheus.NewRegistry())
	c, session, _ := newTestClient(t, b, Options{Metrics: m})
	saveCreds(t, session, "expired", "r1")

	_, err := c.Do(context.Background(), http.MethodGet, "/products/", nil)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, metrics.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Refresh.WithLabelValues(metrics.RefreshSucceeded)))
}

package logger

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// Transport stamps every outbound request with a request id and logs the
// exchange once the response (or transport error) comes back.
type Transport struct {
	Base http.RoundTripper
}

func NewTransport(base http.RoundTripper) *Transport {
	return &Transport{Base: base}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	reqID := r.Header.Get(RequestIDHeader)
	if reqID == "" {
		reqID = RequestIDFrom(r.Context())
	}
	if reqID == "" {
		reqID = uuid.New().String()
	}

	// RoundTrippers must not mutate the caller's request.
	r = r.Clone(WithRequestID(r.Context(), reqID))
	r.Header.Set(RequestIDHeader, reqID)

	start := time.Now()
	log := FromCtx(r.Context())

	resp, err := t.base().RoundTrip(r)
	if err != nil {
		log.Warn("outgoing request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	log.Info("outgoing request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, nil
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront_client"

// Outcome labels for API calls.
const (
	OutcomeSuccess      = "success"
	OutcomeUnauthorized = "unauthorized"
	OutcomeRejected     = "rejected"
	OutcomeNetwork      = "network_failure"
)

// Refresh result labels.
const (
	RefreshSucceeded = "succeeded"
	RefreshFailed    = "failed"
)

// Gateway holds the collectors the API gateway reports into.
type Gateway struct {
	Requests *prometheus.CounterVec
	Refresh  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewGateway builds the collectors and registers them on reg when reg is not nil.
func NewGateway(reg prometheus.Registerer) *Gateway {
	g := &Gateway{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Backend API calls by method and outcome.",
		}, []string{"method", "outcome"}),
		Refresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "token_refresh_total",
			Help:      "Access token refresh attempts by result.",
		}, []string{"result"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Backend API call latency including one refresh-and-retry.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	if reg != nil {
		reg.MustRegister(g.Requests, g.Refresh, g.Duration)
	}
	return g
}

func (g *Gateway) ObserveRequest(method, outcome string, t *Timer) {
	if g == nil {
		return
	}
	g.Requests.WithLabelValues(method, outcome).Inc()
	if t != nil {
		g.Duration.WithLabelValues(method).Observe(t.Duration().Seconds())
	}
}

func (g *Gateway) ObserveRefresh(result string) {
	if g == nil {
		return
	}
	g.Refresh.WithLabelValues(result).Inc()
}

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metric names shared between the instruments and the JSON snapshot.
const (
	RequestsTotalName = "http_requests_total"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	RequestsTotal       *prometheus.CounterVec
	RequestDuration     *prometheus.HistogramVec
	RequestsInFlight    prometheus.Gauge
	RateLimitedRequests prometheus.Counter
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
// Using a custom registry (instead of prometheus.DefaultRegisterer) keeps
// tests isolated and avoids global state.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: RequestsTotalName,
			Help: "Total number of HTTP requests served, by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency from first byte read to handler return.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served.",
		}),

		RateLimitedRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ratelimit_rejected_total",
			Help: "Total number of requests rejected by the per-client rate limiter.",
		}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
		m.RateLimitedRequests,
	)

	return m
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

// RequestSnapshot is a point-in-time summary of served requests.
type RequestSnapshot struct {
	Total    uint64            `json:"total"`
	ByStatus map[string]uint64 `json:"by_status"`
}

// SnapshotRequests sums http_requests_total across methods and routes,
// grouped by status code.
func SnapshotRequests(g prometheus.Gatherer) (RequestSnapshot, error) {
	snap := RequestSnapshot{ByStatus: map[string]uint64{}}

	families, err := g.Gather()
	if err != nil {
		return snap, err
	}
	for _, mf := range families {
		if mf.GetName() != RequestsTotalName {
			continue
		}
		for _, metric := range mf.GetMetric() {
			n := uint64(metric.GetCounter().GetValue())
			snap.Total += n
			snap.ByStatus[labelValue(metric, "code")] += n
		}
	}
	return snap, nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

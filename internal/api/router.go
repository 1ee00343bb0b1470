package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ricirt/service-template/internal/api/handler"
	apimw "github.com/ricirt/service-template/internal/api/middleware"
	"github.com/ricirt/service-template/internal/api/respond"
	"github.com/ricirt/service-template/internal/domain"
	"github.com/ricirt/service-template/internal/health"
	"github.com/ricirt/service-template/internal/metrics"
	"github.com/ricirt/service-template/internal/ratelimiter"
)

// Route prefixes owned by the host.
const (
	HealthPath = "/api/health"
	ReadyPath  = "/api/ready"
	V1Prefix   = "/api/v1"
)

// Deps are the collaborators the host router needs.
type Deps struct {
	// V1 is mounted under V1Prefix. Nil leaves the prefix unrouted.
	V1 http.Handler

	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger

	// Readiness defaults to an empty registry, which always reports ready.
	Readiness *health.Registry

	// Limiter throttles V1 per client. Nil disables rate limiting.
	Limiter *ratelimiter.ClientLimiters

	// MaxBodyBytes caps request bodies. Zero means 1 MB.
	MaxBodyBytes int64

	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP replace the peer
	// address. Enable only behind a proxy that overwrites those headers;
	// otherwise clients pick their own rate limit key.
	TrustProxyHeaders bool
}

// NewRouter wires the chi router, attaches all middleware, and registers
// every route. It is the single source of truth for the HTTP surface area.
//
// Nil Logger defaults to a no-op logger. Nil Metrics are registered on a
// private registry, which also backs Gatherer when that is nil too.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		reg := prometheus.NewRegistry()
		d.Metrics = metrics.New(reg)
		if d.Gatherer == nil {
			d.Gatherer = reg
		}
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.NewRegistry()
	}
	if d.Readiness == nil {
		d.Readiness = health.NewRegistry(0)
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = 1 << 20
	}

	r := chi.NewRouter()

	// --- global middleware (applied to every route) ---
	r.Use(apimw.Recover(d.Logger)) // recover panics, return 500
	if d.TrustProxyHeaders {
		r.Use(chimw.RealIP) // trust X-Forwarded-For / X-Real-IP
	}
	r.Use(chimw.RequestSize(d.MaxBodyBytes)) // cap request bodies
	r.Use(apimw.CorrelationID)               // X-Correlation-ID inject / echo
	r.Use(apimw.Trace)
	r.Use(apimw.Instrument(d.Metrics))
	r.Use(apimw.RequestLogger(d.Logger))

	// Set before mounting so chi sub-routers inherit them.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond.MapError(w, domain.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respond.MapError(w, domain.ErrMethodNotAllowed)
	})

	// --- handler instances ---
	hh := handler.NewHealthHandler()
	rh := handler.NewReadinessHandler(d.Readiness, d.Logger)

	// --- routes ---
	r.Get(HealthPath, hh.Health)
	r.Get(ReadyPath, rh.Ready)

	// Raw Prometheus scrape endpoint (for Prometheus server / Grafana)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	if d.V1 != nil {
		r.Group(func(r chi.Router) {
			if d.Limiter != nil {
				r.Use(apimw.RateLimit(d.Limiter, d.Metrics.RateLimitedRequests.Inc))
			}
			Mount(r, V1Prefix, d.V1)
		})
	}

	return r
}

// Mount delegates every request under prefix to h so that a request for
// prefix+subpath reaches whatever h registered for subpath. chi routers
// resolve the remainder natively; any other handler gets the prefix
// stripped from the URL path.
func Mount(r chi.Router, prefix string, h http.Handler) {
	if _, ok := h.(chi.Routes); ok {
		r.Mount(prefix, h)
		return
	}
	r.Mount(prefix, http.StripPrefix(prefix, h))
}

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ricirt/service-template/internal/metrics"
)

// unmatchedRoute labels requests that matched no route, keeping the route
// label bounded no matter what paths clients send.
const unmatchedRoute = "unmatched"

// Instrument records request count, latency and in-flight gauge.
func Instrument(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			m.RequestsInFlight.Inc()
			defer m.RequestsInFlight.Dec()

			next.ServeHTTP(ww, r)

			m.ObserveRequest(r.Method, routePattern(r), statusOf(ww), time.Since(start))
		})
	}
}

// routePattern returns the matched chi pattern, e.g. "/api/v1/*" or
// "/api/health". Only meaningful after the router has run.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return unmatchedRoute
}

// statusOf treats a handler that never wrote as an implicit 200.
func statusOf(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}

package middleware

import (
	"net"
	"net/http"

	"github.com/ricirt/service-template/internal/api/respond"
	"github.com/ricirt/service-template/internal/domain"
	"github.com/ricirt/service-template/internal/ratelimiter"
)

// RateLimit rejects requests from clients that exhausted their token bucket
// with 429. Clients are keyed by the host part of RemoteAddr, which is the
// TCP peer unless chi's RealIP ran first. onReject, if non-nil, is called
// for every rejected request.
func RateLimit(l *ratelimiter.ClientLimiters, onReject func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientKey(r)) {
				if onReject != nil {
					onReject()
				}
				w.Header().Set("Retry-After", "1")
				respond.MapError(w, domain.ErrRateLimited)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

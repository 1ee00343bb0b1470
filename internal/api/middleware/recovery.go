package middleware

import (
	"net/http"
	"runtime/debug"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ricirt/service-template/internal/api/respond"
	"github.com/ricirt/service-template/internal/errorreporting"
)

// Recover turns a handler panic into a 500 JSON response, logs it with the
// stack and reports it to Sentry when configured. http.ErrAbortHandler is
// re-raised so net/http can abort the connection as intended. If the handler
// had already sent headers the partial response is left alone.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("correlation_id", GetCorrelationID(r.Context())),
					zap.Int("sent_status", ww.Status()),
				)
				errorreporting.CapturePanic(r, rec)

				if ww.Status() != 0 {
					return
				}
				respond.Error(ww, http.StatusInternalServerError, "internal server error")
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

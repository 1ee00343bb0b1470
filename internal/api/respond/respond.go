// Package respond writes JSON responses and maps domain errors to HTTP
// status codes. Handlers and middleware share it so every error body has
// the same {"error": "..."} shape.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ricirt/service-template/internal/domain"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// MapError translates domain sentinel errors to HTTP status codes.
// All mapping lives here so individual handlers stay concise.
func MapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrMethodNotAllowed):
		Error(w, http.StatusMethodNotAllowed, err.Error())
	case errors.Is(err, domain.ErrRateLimited):
		Error(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, domain.ErrNotReady):
		Error(w, http.StatusServiceUnavailable, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}

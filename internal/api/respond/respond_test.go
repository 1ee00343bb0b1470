package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ricirt/service-template/internal/api/respond"
	"github.com/ricirt/service-template/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrNotFound, http.StatusNotFound, "not found"},
		{domain.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "method not allowed"},
		{domain.ErrRateLimited, http.StatusTooManyRequests, "rate limit exceeded"},
		{fmt.Errorf("postgres: %w", domain.ErrNotReady), http.StatusServiceUnavailable, "postgres: service not ready"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			w := httptest.NewRecorder()
			respond.MapError(w, tc.err)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Fatalf("expected JSON content type, got %q", ct)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["error"] != tc.message {
				t.Fatalf("expected error %q, got %q", tc.message, body["error"])
			}
		})
	}
}

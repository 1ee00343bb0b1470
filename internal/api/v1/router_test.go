package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	v1 "github.com/ricirt/service-template/internal/api/v1"
	"github.com/ricirt/service-template/internal/domain"
	"github.com/ricirt/service-template/internal/metrics"
)

func TestRouter_RoutesAreRelative(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveRequest(http.MethodGet, "/api/health", http.StatusOK, time.Millisecond)

	info := domain.BuildInfo{Service: "template", Version: "dev", Environment: "test"}
	r := v1.NewRouter(info, reg, zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for /version, got %d", w.Code)
	}
	var got domain.BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != info {
		t.Fatalf("expected %+v, got %+v", info, got)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for /metrics, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/version", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("routes must be registered relative to the mount prefix, got %d", w.Code)
	}
}

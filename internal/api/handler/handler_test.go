package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"

	"github.com/ricirt/service-template/internal/api/handler"
	"github.com/ricirt/service-template/internal/domain"
	"github.com/ricirt/service-template/internal/health"
	"github.com/ricirt/service-template/internal/metrics"
)

func TestHealthHandler_Health(t *testing.T) {
	h := handler.NewHealthHandler()

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got domain.HealthStatus
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != domain.NewHealthStatus() {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestReadinessHandler_Ready(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"ready", nil, http.StatusOK},
		{"not ready", errors.New("timeout"), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := health.NewRegistry(time.Second, health.CheckFunc{
				CheckName: "postgres",
				Fn:        func(context.Context) error { return tc.err },
			})
			h := handler.NewReadinessHandler(reg, zap.NewNop())

			w := httptest.NewRecorder()
			h.Ready(w, httptest.NewRequest(http.MethodGet, "/api/ready", nil))

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			var report domain.ReadinessReport
			if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if _, ok := report.Checks["postgres"]; !ok {
				t.Fatalf("expected postgres check in report, got %+v", report)
			}
		})
	}
}

func TestVersionHandler_GetVersion(t *testing.T) {
	info := domain.BuildInfo{Service: "template", Version: "1.2.3", Environment: "test"}
	h := handler.NewVersionHandler(info)

	w := httptest.NewRecorder()
	h.GetVersion(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	var got domain.BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != info {
		t.Fatalf("expected %+v, got %+v", info, got)
	}
}

type failingGatherer struct{}

func (failingGatherer) Gather() ([]*dto.MetricFamily, error) { return nil, errors.New("broken") }

func TestMetricsHandler_GetMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveRequest(http.MethodGet, "/api/health", http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	handler.NewMetricsHandler(reg, zap.NewNop()).GetMetrics(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Requests metrics.RequestSnapshot `json:"requests"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Requests.Total != 1 || body.Requests.ByStatus["200"] != 1 {
		t.Fatalf("unexpected snapshot %+v", body.Requests)
	}
}

func TestMetricsHandler_GatherError(t *testing.T) {
	w := httptest.NewRecorder()
	handler.NewMetricsHandler(failingGatherer{}, zap.NewNop()).GetMetrics(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "broken") {
		t.Fatal("internal error detail must not leak to clients")
	}
}

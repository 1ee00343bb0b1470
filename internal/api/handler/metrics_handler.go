package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ricirt/service-template/internal/api/respond"
	"github.com/ricirt/service-template/internal/metrics"
)

// MetricsHandler serves a human-readable JSON request snapshot.
// Raw Prometheus metrics (counters, histograms) are available at /metrics
// via promhttp.Handler and are separate from this endpoint.
type MetricsHandler struct {
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

func NewMetricsHandler(gatherer prometheus.Gatherer, logger *zap.Logger) *MetricsHandler {
	return &MetricsHandler{gatherer: gatherer, logger: logger}
}

// GetMetrics handles GET /api/v1/metrics
//
// @Summary  Request totals snapshot
// @Tags     metrics
// @Produce  json
// @Success  200  {object}  map[string]any
// @Router   /api/v1/metrics [get]
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	snap, err := metrics.SnapshotRequests(h.gatherer)
	if err != nil {
		h.logger.Error("gather metrics failed", zap.Error(err))
		respond.MapError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"requests": snap,
	})
}

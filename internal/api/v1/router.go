// Package v1 holds the versioned API the host mounts under /api/v1.
// Routes here are registered relative to that prefix.
package v1

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ricirt/service-template/internal/api/handler"
	"github.com/ricirt/service-template/internal/domain"
)

// NewRouter returns the v1 routing table.
func NewRouter(info domain.BuildInfo, gatherer prometheus.Gatherer, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	vh := handler.NewVersionHandler(info)
	mh := handler.NewMetricsHandler(gatherer, logger)

	r.Get("/version", vh.GetVersion)

	// JSON metrics snapshot
	r.Get("/metrics", mh.GetMetrics)

	return r
}

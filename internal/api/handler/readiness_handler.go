package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/ricirt/service-template/internal/api/respond"
	"github.com/ricirt/service-template/internal/health"
)

// ReadinessHandler reports whether the service's dependencies are reachable.
type ReadinessHandler struct {
	registry *health.Registry
	logger   *zap.Logger
}

func NewReadinessHandler(registry *health.Registry, logger *zap.Logger) *ReadinessHandler {
	return &ReadinessHandler{registry: registry, logger: logger}
}

// Ready handles GET /api/ready
//
// @Summary  Readiness probe
// @Tags     Health
// @Produce  json
// @Success  200  {object}  domain.ReadinessReport
// @Failure  503  {object}  domain.ReadinessReport
// @Router   /api/ready [get]
func (h *ReadinessHandler) Ready(w http.ResponseWriter, r *http.Request) {
	report := h.registry.Run(r.Context())
	if !report.Ready() {
		h.logger.Warn("readiness check failed", zap.Any("checks", report.Checks))
		respond.JSON(w, http.StatusServiceUnavailable, report)
		return
	}
	respond.JSON(w, http.StatusOK, report)
}


package handler

import (
	"net/http"

	"github.com/ricirt/service-template/internal/api/respond"
	"github.com/ricirt/service-template/internal/domain"
)

// HealthHandler serves the liveness probe endpoint.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

// Health handles GET /api/health
//
// The response never depends on the request: headers, query and body are
// ignored, and nothing is read or written besides the response itself.
//
// @Summary  Liveness probe
// @Tags     Health
// @Produce  json
// @Success  200  {object}  domain.HealthStatus
// @Router   /api/health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, domain.NewHealthStatus())
}

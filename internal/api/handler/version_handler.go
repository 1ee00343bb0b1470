package handler

import (
	"net/http"

	"github.com/ricirt/service-template/internal/api/respond"
	"github.com/ricirt/service-template/internal/domain"
)

// VersionHandler reports which build is serving requests.
type VersionHandler struct {
	info domain.BuildInfo
}

func NewVersionHandler(info domain.BuildInfo) *VersionHandler {
	return &VersionHandler{info: info}
}

// GetVersion handles GET /api/v1/version
//
// @Summary  Service build information
// @Tags     system
// @Produce  json
// @Success  200  {object}  domain.BuildInfo
// @Router   /api/v1/version [get]
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, h.info)
}

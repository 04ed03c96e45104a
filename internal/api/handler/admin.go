package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/motherroad/motherroad/internal/api/middleware"
	"github.com/motherroad/motherroad/internal/api/models"
	"github.com/motherroad/motherroad/internal/api/response"
	"github.com/motherroad/motherroad/internal/catalog"
)

// AdminHandler handles authenticated admin endpoints.
type AdminHandler struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalogService *catalog.Service, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		catalog: catalogService,
		logger:  logger,
	}
}

// RefreshCatalog handles POST /v1/admin/catalog/refresh - force a snapshot
// refresh regardless of TTL.
func (h *AdminHandler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	caller := middleware.GetService(r.Context())

	snap, err := h.catalog.Refresh(r.Context())
	if err != nil {
		h.logger.Error().Err(err).
			Str("service", caller).
			Msg("forced catalog refresh failed")
		response.ServiceUnavailable(w, r, "catalog refresh failed")
		return
	}

	h.logger.Info().
		Str("service", caller).
		Int("stops", len(snap.Stops)).
		Msg("catalog refreshed by admin request")

	response.JSON(w, r, http.StatusOK, models.NewCatalogStatsResponse(h.catalog.Stats()))
}

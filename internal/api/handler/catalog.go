package handler

import (
	"net/http"

	"github.com/motherroad/motherroad/internal/api/models"
	"github.com/motherroad/motherroad/internal/api/response"
	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/planner"
)

// CatalogHandler handles catalog read endpoints.
type CatalogHandler struct {
	catalog *catalog.Service
	planner *planner.Service
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *catalog.Service, plannerService *planner.Service) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalogService,
		planner: plannerService,
	}
}

// ListCities handles GET /v1/catalog/cities - destination cities for
// autocomplete.
func (h *CatalogHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.planner.DestinationCities(r.Context())
	if err != nil {
		writePlanningError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewCitiesResponse(cities))
}

// Stats handles GET /v1/catalog/stats - snapshot statistics.
func (h *CatalogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, r, http.StatusOK, models.NewCatalogStatsResponse(h.catalog.Stats()))
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/motherroad/motherroad/internal/api/middleware"
	"github.com/motherroad/motherroad/internal/api/models"
	"github.com/motherroad/motherroad/internal/api/response"
	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/planner"
)

// TripsHandler handles trip planning endpoints.
type TripsHandler struct {
	planner *planner.Service
}

// NewTripsHandler creates a new TripsHandler.
func NewTripsHandler(plannerService *planner.Service) *TripsHandler {
	return &TripsHandler{planner: plannerService}
}

// PlanTrip handles POST /v1/trips:plan.
func (h *TripsHandler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	var req models.PlanTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid plan request", fieldErrors)
		return
	}

	plan, err := h.planner.PlanTrip(r.Context(), req.ToRouteRequest())
	if err != nil {
		writePlanningError(w, r, err)
		return
	}

	analysis := h.planner.AnalyzeCompletion(plan, plan.OriginalRequestedDays)
	response.JSON(w, r, http.StatusOK, models.NewTripPlanResponse(plan, analysis))
}

// AnalyzeTrip handles POST /v1/trips:analyze. It re-grades a previously
// returned plan without touching the catalog.
func (h *TripsHandler) AnalyzeTrip(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "invalid request body", nil)
		return
	}
	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		response.BadRequest(w, r, "invalid analyze request", fieldErrors)
		return
	}

	analysis := h.planner.AnalyzeCompletion(req.Plan.ToTripPlan(), req.RequestedDays)
	response.JSON(w, r, http.StatusOK, models.NewCompletionAnalysisResponse(analysis))
}

// writePlanningError maps planner and catalog errors to problem responses.
func writePlanningError(w http.ResponseWriter, r *http.Request, err error) {
	traceID := middleware.GetRequestID(r.Context())

	var perr *planner.Error
	switch {
	case errors.Is(err, planner.ErrCityNotFound):
		problem := models.NewNotFound(traceID, err.Error())
		if errors.As(err, &perr) && len(perr.Suggestions) > 0 {
			problem.WithSuggestions(perr.Suggestions)
		}
		response.Error(w, r, problem)

	case errors.Is(err, planner.ErrSameStartAndEnd),
		errors.Is(err, planner.ErrInvalidDayCount):
		response.BadRequest(w, r, err.Error(), nil)

	case errors.Is(err, catalog.ErrUnavailable),
		errors.Is(err, catalog.ErrEmptyCatalog),
		errors.Is(err, planner.ErrNoDestinationCities):
		response.ServiceUnavailable(w, r, "stop catalog is currently unavailable")

	default:
		response.InternalError(w, r, "planning failed")
	}
}

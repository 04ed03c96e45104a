// Package handler provides HTTP handlers for the Mother Road API.
package handler

import (
	"net/http"
	"time"

	"github.com/motherroad/motherroad/internal/api/models"
	"github.com/motherroad/motherroad/internal/api/response"
	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	catalog   *catalog.Service
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, catalogService *catalog.Service, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		catalog:   catalogService,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service is
// ready once a catalog snapshot can be served; planning cannot run without one.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if _, err := h.catalog.Snapshot(r.Context()); err != nil {
		health := models.Health{
			Status: models.HealthStatusFail,
			Time:   models.Timestamp(time.Now()),
			Details: map[string]interface{}{
				"catalog": err.Error(),
			},
		}
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())
	stats := h.catalog.Stats()

	catalogStatus := models.HealthStatusOK
	if !stats.HasSnapshot {
		catalogStatus = models.HealthStatusFail
	} else if !stats.Fresh {
		catalogStatus = models.HealthStatusDegraded
	}

	status := models.SystemStatus{
		Status: catalogStatus,
		Time:   now,
		Subsystems: []models.SubsystemStatus{
			{Name: "catalog-snapshot", Status: catalogStatus},
		},
	}

	if h.registry != nil {
		for _, ph := range h.registry.GetAllHealth() {
			providerStatus := models.HealthStatusOK
			switch {
			case ph.IsUnhealthy():
				providerStatus = models.HealthStatusFail
			case ph.IsDegraded():
				providerStatus = models.HealthStatusDegraded
			}

			p := models.ProviderStatus{
				Provider: ph.Name,
				Status:   providerStatus,
			}
			if ph.LastSuccessAt != nil {
				ts := models.Timestamp(*ph.LastSuccessAt)
				p.LastSuccessAt = &ts
			}
			if ph.LastFailureAt != nil {
				ts := models.Timestamp(*ph.LastFailureAt)
				p.LastFailureAt = &ts
			}
			if ph.LastError != "" {
				msg := ph.LastError
				p.Message = &msg
			}
			status.Providers = append(status.Providers, p)
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

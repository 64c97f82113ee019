package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/maxviazov/football-sim/internal/service"
)

// APIV1Prefix is the base path of every simulation and probe route under the versioned API.
const APIV1Prefix = "/api/v1"

// Register mounts all public routes on the given engine.
func Register(r *gin.Engine, health *HealthHandler, svc service.CompetitionService) {
	// Health probes
	r.GET("/live", health.Liveness)
	r.GET("/ready", health.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		h := api.Group("/health")
		{
			h.GET("/live", health.Liveness)
			h.GET("/ready", health.Readiness)
		}
		NewSimulationHandler(svc).Register(api)
	}
}

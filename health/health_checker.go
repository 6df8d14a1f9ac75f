// Package health provides health monitoring and reporting for the
// prescription API.
package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prescrito/prescrito-api/controller"
	"github.com/prescrito/prescrito-api/handlers"
)

// Checker reports application health: state statistics, the generative
// backend circuit breaker state and process figures.
type Checker struct {
	ctrl         *controller.Controller
	breakerState func() string
	startTime    time.Time
}

// NewChecker creates a health checker. breakerState reports the generative
// client's circuit breaker state.
func NewChecker(ctrl *controller.Controller, breakerState func() string) *Checker {
	return &Checker{
		ctrl:         ctrl,
		breakerState: breakerState,
		startTime:    time.Now(),
	}
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds float64        `json:"uptime_seconds"`
	Data          map[string]any `json:"data"`
	System        map[string]any `json:"system"`
}

// Handler returns server health information. The service is degraded when
// the generative backend breaker is open: local data still works, but
// generation will fail fast.
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		snap := c.ctrl.Snapshot()
		breaker := c.breakerState()

		status := "healthy"
		if breaker == "open" {
			status = "degraded"
		}

		response := HealthResponse{
			Status:        status,
			UptimeSeconds: time.Since(c.startTime).Seconds(),
			Data: map[string]any{
				"api_version":        "1.0",
				"prescriptions":      len(snap.Prescriptions),
				"folders":            len(snap.Folders),
				"profile_configured": snap.Profile != nil,
				"generator_breaker":  breaker,
			},
			System: map[string]any{
				"goroutines": runtime.NumGoroutine(),
				"memory": map[string]any{
					"alloc_mb": int(m.Alloc / 1024 / 1024),
					"sys_mb":   int(m.Sys / 1024 / 1024),
					"num_gc":   m.NumGC,
				},
			},
		}

		handlers.RespondWithJSON(w, http.StatusOK, response)
	}
}

package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/monitor"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/session"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/ChimeraOS/backend/internal/infrastructure/monitoring"
)

// MetricsReport is the JSON counterpart of /metrics.
type MetricsReport struct {
	Timestamp time.Time            `json:"timestamp"`
	Server    *monitoring.Snapshot `json:"server,omitempty"`
	Windows   window.Stats         `json:"windows"`
	Sessions  session.Stats        `json:"sessions"`
	Monitor   monitor.Summary      `json:"monitor"`
}

// MetricsSummary aggregates server, desktop and simulated load figures.
func (h *Handlers) MetricsSummary(c *gin.Context) {
	report := MetricsReport{
		Timestamp: time.Now(),
		Windows:   h.shell.Stats(),
		Sessions:  h.sessions.Stats(),
		Monitor:   h.shell.Sampler().Snapshot().Summary,
	}
	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		report.Server = &snap
	}
	c.JSON(http.StatusOK, report)
}

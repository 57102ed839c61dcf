package handlers

import (
	"net/http"

	"borewell-backend/internal/monitoring"
	"borewell-backend/pkg/utils"
)

// MonitoringHandler exposes the system monitor to the owner's admin panel
type MonitoringHandler struct {
	Monitor *monitoring.Monitor
}

func NewMonitoringHandler(monitor *monitoring.Monitor) *MonitoringHandler {
	return &MonitoringHandler{Monitor: monitor}
}

// GetSystemStats returns host and database metrics
func (h *MonitoringHandler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	stats := h.Monitor.CollectStats(r.Context())
	utils.JSON(w, http.StatusOK, stats)
}

// GetAlerts returns raised alerts
func (h *MonitoringHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Monitor.Alerts())
}

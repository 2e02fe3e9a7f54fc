package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	monitoringservice "wattline/contexts/telemetry/monitoring-service"
	monitoringerrors "wattline/contexts/telemetry/monitoring-service/domain/errors"
	monitoringhttp "wattline/contexts/telemetry/monitoring-service/transport/http"
)

// MonitoringServer fronts the monitoring service read API.
type MonitoringServer struct {
	*server
	module monitoringservice.Module
}

func NewMonitoring(module monitoringservice.Module, logger *slog.Logger, addr string) *MonitoringServer {
	s := &MonitoringServer{
		server: newServer(addr, logger),
		module: module,
	}
	s.registerRoutes()
	return s
}

func (s *MonitoringServer) registerRoutes() {
	s.mux.HandleFunc("GET /api/telemetry/v1/consumptions", s.handleListConsumptions)
}

func (s *MonitoringServer) handleListConsumptions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	ownerID, err := strconv.ParseInt(query.Get("owner_id"), 10, 64)
	if err != nil || ownerID <= 0 {
		writeMonitoringError(w, http.StatusBadRequest, "owner_id must be a positive integer")
		return
	}

	day, err := time.Parse("2006-01-02", query.Get("date"))
	if err != nil {
		writeMonitoringError(w, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
		return
	}

	resp, err := s.module.Handler.ListConsumptionsHandler(r.Context(), ownerID, day)
	if err != nil {
		writeMonitoringDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeMonitoringError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, monitoringhttp.ErrorResponse{Error: message})
}

func writeMonitoringDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, monitoringerrors.ErrMissingFields):
		writeMonitoringError(w, http.StatusBadRequest, err.Error())
	default:
		writeMonitoringError(w, http.StatusInternalServerError, "internal server error")
	}
}

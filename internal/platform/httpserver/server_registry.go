package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	registryservice "wattline/contexts/device-fleet/registry-service"
	registryerrors "wattline/contexts/device-fleet/registry-service/domain/errors"
	registryhttp "wattline/contexts/device-fleet/registry-service/transport/http"
)

// RegistryServer fronts the device registry.
type RegistryServer struct {
	*server
	module registryservice.Module
}

func NewRegistry(module registryservice.Module, logger *slog.Logger, addr string) *RegistryServer {
	s := &RegistryServer{
		server: newServer(addr, logger),
		module: module,
	}
	s.registerRoutes()
	return s
}

func (s *RegistryServer) registerRoutes() {
	s.mux.HandleFunc("POST /api/fleet/v1/devices", s.handleAdd)
	s.mux.HandleFunc("GET /api/fleet/v1/devices", s.handleList)
	s.mux.HandleFunc("PUT /api/fleet/v1/devices/{device_id}", s.handleEdit)
	s.mux.HandleFunc("DELETE /api/fleet/v1/devices/{device_id}", s.handleDelete)
	s.mux.HandleFunc("GET /api/fleet/v1/devices/{device_id}/max", s.handleDeviceLimit)
	s.mux.HandleFunc("GET /api/fleet/v1/owners/{owner_id}/devices", s.handleListOwnerDevices)
}

func (s *RegistryServer) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req registryhttp.AddDeviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.module.Handler.AddDeviceHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *RegistryServer) handleList(w http.ResponseWriter, r *http.Request) {
	resp, err := s.module.Handler.ListDevicesHandler(r.Context())
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *RegistryServer) handleEdit(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := pathID(r, "device_id")
	if !ok {
		writeRegistryError(w, http.StatusBadRequest, "device_id must be a positive integer")
		return
	}

	var req registryhttp.EditDeviceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRegistryError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.module.Handler.EditDeviceHandler(r.Context(), deviceID, req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *RegistryServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := pathID(r, "device_id")
	if !ok {
		writeRegistryError(w, http.StatusBadRequest, "device_id must be a positive integer")
		return
	}

	if err := s.module.Handler.DeleteDeviceHandler(r.Context(), deviceID); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, registryhttp.StatusResponse{OK: "deleted"})
}

func (s *RegistryServer) handleDeviceLimit(w http.ResponseWriter, r *http.Request) {
	deviceID, ok := pathID(r, "device_id")
	if !ok {
		writeRegistryError(w, http.StatusBadRequest, "device_id must be a positive integer")
		return
	}

	resp, err := s.module.Handler.DeviceLimitHandler(r.Context(), deviceID)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *RegistryServer) handleListOwnerDevices(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := pathID(r, "owner_id")
	if !ok {
		writeRegistryError(w, http.StatusBadRequest, "owner_id must be a positive integer")
		return
	}

	resp, err := s.module.Handler.ListOwnerDevicesHandler(r.Context(), ownerID)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeRegistryError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, registryhttp.ErrorResponse{Error: message})
}

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, registryerrors.ErrMissingFields):
		writeRegistryError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, registryerrors.ErrDeviceNotFound):
		writeRegistryError(w, http.StatusNotFound, err.Error())
	default:
		writeRegistryError(w, http.StatusInternalServerError, "internal server error")
	}
}

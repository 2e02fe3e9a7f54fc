package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	profileservice "wattline/contexts/identity-access/profile-service"
	profileerrors "wattline/contexts/identity-access/profile-service/domain/errors"
	profilehttp "wattline/contexts/identity-access/profile-service/transport/http"
	"wattline/internal/shared/collab"
)

// ProfileServer fronts the profile service.
type ProfileServer struct {
	*server
	module profileservice.Module
}

func NewProfile(module profileservice.Module, logger *slog.Logger, addr string) *ProfileServer {
	s := &ProfileServer{
		server: newServer(addr, logger),
		module: module,
	}
	s.registerRoutes()
	return s
}

func (s *ProfileServer) registerRoutes() {
	s.mux.HandleFunc("POST /api/profiles/v1/profiles", s.handleCreate)
	s.mux.HandleFunc("GET /api/profiles/v1/profiles", s.handleList)
	s.mux.HandleFunc("GET /api/profiles/v1/profiles/{credential_id}", s.handleGet)
	s.mux.HandleFunc("PUT /api/profiles/v1/profiles", s.handleEdit)
	s.mux.HandleFunc("DELETE /api/profiles/v1/accounts/{credential_id}", s.handleDeleteAccount)
}

func (s *ProfileServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req profilehttp.CreateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProfileError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.module.Handler.CreateProfileHandler(r.Context(), req)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *ProfileServer) handleList(w http.ResponseWriter, r *http.Request) {
	resp, err := s.module.Handler.ListProfilesHandler(r.Context())
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *ProfileServer) handleGet(w http.ResponseWriter, r *http.Request) {
	credentialID, ok := pathID(r, "credential_id")
	if !ok {
		writeProfileError(w, http.StatusBadRequest, "credential_id must be a positive integer")
		return
	}

	resp, err := s.module.Handler.GetProfileHandler(r.Context(), credentialID)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *ProfileServer) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req profilehttp.EditProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeProfileError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.module.Handler.EditProfileHandler(r.Context(), req)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *ProfileServer) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	credentialID, ok := pathID(r, "credential_id")
	if !ok {
		writeProfileError(w, http.StatusBadRequest, "credential_id must be a positive integer")
		return
	}

	if err := s.module.Handler.DeleteAccountHandler(r.Context(), credentialID); err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profilehttp.StatusResponse{OK: "deleted"})
}

func writeProfileError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, profilehttp.ErrorResponse{Error: message})
}

func writeProfileDomainError(w http.ResponseWriter, err error) {
	if collabErr, ok := collab.As(err); ok {
		writeCollaboratorError(w, collabErr)
		return
	}
	switch {
	case errors.Is(err, profileerrors.ErrMissingFields):
		writeProfileError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, profileerrors.ErrUsernameExists),
		errors.Is(err, profileerrors.ErrEmailExists):
		writeProfileError(w, http.StatusConflict, err.Error())
	case errors.Is(err, profileerrors.ErrProfileNotFound):
		writeProfileError(w, http.StatusNotFound, err.Error())
	default:
		writeProfileError(w, http.StatusInternalServerError, "internal server error")
	}
}

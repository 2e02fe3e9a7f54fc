package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	credentialservice "wattline/contexts/identity-access/credential-service"
	credentialerrors "wattline/contexts/identity-access/credential-service/domain/errors"
	credentialhttp "wattline/contexts/identity-access/credential-service/transport/http"
	"wattline/internal/shared/collab"
)

// CredentialServer fronts the credential service.
type CredentialServer struct {
	*server
	module credentialservice.Module
}

func NewCredential(module credentialservice.Module, logger *slog.Logger, addr string) *CredentialServer {
	s := &CredentialServer{
		server: newServer(addr, logger),
		module: module,
	}
	s.registerRoutes()
	return s
}

func (s *CredentialServer) registerRoutes() {
	s.mux.HandleFunc("POST /api/identity/v1/register", s.handleRegister)
	s.mux.HandleFunc("PUT /api/identity/v1/credentials/{credential_id}", s.handleUpdate)
	s.mux.HandleFunc("DELETE /api/identity/v1/credentials/{credential_id}", s.handleDelete)
}

func (s *CredentialServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialhttp.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeCredentialError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.module.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		writeCredentialDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *CredentialServer) handleUpdate(w http.ResponseWriter, r *http.Request) {
	credentialID, ok := pathID(r, "credential_id")
	if !ok {
		writeCredentialError(w, http.StatusBadRequest, "credential_id must be a positive integer")
		return
	}

	var req credentialhttp.UpdateCredentialRequest
	if err := decodeJSON(r, &req); err != nil {
		writeCredentialError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	resp, err := s.module.Handler.UpdateHandler(r.Context(), credentialID, req)
	if err != nil {
		writeCredentialDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *CredentialServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	credentialID, ok := pathID(r, "credential_id")
	if !ok {
		writeCredentialError(w, http.StatusBadRequest, "credential_id must be a positive integer")
		return
	}

	if err := s.module.Handler.DeleteHandler(r.Context(), credentialID); err != nil {
		writeCredentialDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credentialhttp.StatusResponse{OK: "deleted"})
}

func writeCredentialError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, credentialhttp.ErrorResponse{Error: message})
}

func writeCredentialDomainError(w http.ResponseWriter, err error) {
	if collabErr, ok := collab.As(err); ok {
		writeCollaboratorError(w, collabErr)
		return
	}
	switch {
	case errors.Is(err, credentialerrors.ErrMissingFields),
		errors.Is(err, credentialerrors.ErrNothingToUpdate):
		writeCredentialError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, credentialerrors.ErrUsernameExists),
		errors.Is(err, credentialerrors.ErrEmailExists):
		writeCredentialError(w, http.StatusConflict, err.Error())
	case errors.Is(err, credentialerrors.ErrCredentialNotFound):
		writeCredentialError(w, http.StatusNotFound, err.Error())
	default:
		writeCredentialError(w, http.StatusInternalServerError, "internal server error")
	}
}

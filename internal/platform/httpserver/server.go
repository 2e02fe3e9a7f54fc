package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"wattline/internal/shared/collab"
)

// server carries what every service front-end shares: mux, logger, listen
// address. The per-service types embed it and register their own routes.
type server struct {
	mux    *http.ServeMux
	logger *slog.Logger
	addr   string
}

func newServer(addr string, logger *slog.Logger) *server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	return &server{
		mux:    http.NewServeMux(),
		logger: logger,
		addr:   addr,
	}
}

func (s *server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the mux for httptest-based tests.
func (s *server) Handler() http.Handler {
	return s.mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeCollaboratorError relays a saga collaborator's response verbatim:
// same status, same body.
func writeCollaboratorError(w http.ResponseWriter, err *collab.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_, _ = w.Write(err.Body)
}

func decodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

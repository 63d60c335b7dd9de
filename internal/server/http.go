package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/groblegark/infradash/internal/auth"
	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/service"
)

// NewHTTPHandler returns an http.Handler with all routes registered. The
// session middleware resolves credentials for every route; individual
// handlers decide how a missing identity is surfaced.
func (s *Server) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/executions", s.handleSaveExecution)
	mux.HandleFunc("GET /v1/executions", s.handleListExecutions)
	mux.HandleFunc("GET /v1/executions/{id}", s.handleGetExecution)
	mux.HandleFunc("DELETE /v1/executions/{id}", s.handleDeleteExecution)

	mux.HandleFunc("GET /v1/profile", s.handleGetProfile)
	mux.HandleFunc("PUT /v1/profile", s.handleUpdateProfile)

	mux.HandleFunc("POST /v1/users", s.requireAdmin(s.handleCreateUser))
	mux.HandleFunc("GET /v1/users", s.requireAdmin(s.handleListUsers))
	mux.HandleFunc("POST /v1/sessions", s.requireAdmin(s.handleCreateSession))
	mux.HandleFunc("DELETE /v1/sessions", s.requireAdmin(s.handleRevokeSession))

	mux.HandleFunc("GET /v1/health", s.handleHealth)

	mux.HandleFunc("GET /dashboard/executions", s.handleExecutionsPage)
	mux.HandleFunc("GET /dashboard/executions/{id}", s.handleExecutionPage)
	mux.HandleFunc("POST /dashboard/executions/{id}/delete", s.handleExecutionDelete)
	mux.HandleFunc("GET /dashboard/settings/profile", s.handleProfilePage)
	mux.HandleFunc("POST /dashboard/settings/profile", s.handleProfileSave)

	return auth.Middleware(s.sessions, mux)
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeServiceError maps a service failure onto an HTTP status. Persistence
// details are logged and replaced with a generic message; validation messages
// go back to the caller verbatim.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *model.ValidationError
	var pe *service.PersistenceError

	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &pe):
		slog.Error("store operation failed", "op", pe.Op, "code", pe.Code, "error", pe.Unwrap())
		writeError(w, http.StatusInternalServerError, "storage failure, please retry")
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

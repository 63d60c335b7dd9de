package server

import (
	"encoding/json"
	"net/http"

	"github.com/groblegark/infradash/internal/model"
)

// handleGetProfile handles GET /v1/profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.profiles.Get(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleUpdateProfile handles PUT /v1/profile.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var in model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	user, err := s.updateProfile(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

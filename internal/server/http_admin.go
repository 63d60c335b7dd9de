package server

import (
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/groblegark/infradash/internal/idgen"
	"github.com/groblegark/infradash/internal/model"
)

// adminTokenHeader carries the shared admin credential. It is separate from
// the Authorization header, which belongs to user sessions.
const adminTokenHeader = "X-Admin-Token"

// requireAdmin gates a handler behind the admin token. With no token
// configured the admin API is disabled entirely.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" {
			writeError(w, http.StatusForbidden, "admin API is disabled")
			return
		}
		provided := r.Header.Get(adminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(s.adminToken)) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid admin token")
			return
		}
		next(w, r)
	}
}

type createUserInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// handleCreateUser handles POST /v1/users.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var in createUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	profile := model.TrimProfile(model.UserProfile{FullName: in.FullName, Email: in.Email})
	if err := model.ValidateProfile(&profile); err != nil {
		writeServiceError(w, err)
		return
	}

	id, err := idgen.NewUserID()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	user := &model.User{ID: id, FullName: profile.FullName, Email: profile.Email}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// handleListUsers handles GET /v1/users.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if users == nil {
		users = []*model.User{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"users": users,
		"total": len(users),
	})
}

type createSessionInput struct {
	UserID string `json:"user_id"`
}

type createSessionOutput struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleCreateSession handles POST /v1/sessions. This is the seam an external
// identity provider calls after authenticating a human: it exchanges a known
// user id for a session token.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var in createSessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	if _, err := s.store.GetUser(r.Context(), in.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	session, token, err := s.sessions.Issue(r.Context(), in.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createSessionOutput{
		Token:     token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	})
}

type revokeSessionInput struct {
	Token string `json:"token"`
}

// handleRevokeSession handles DELETE /v1/sessions.
func (s *Server) handleRevokeSession(w http.ResponseWriter, r *http.Request) {
	var in revokeSessionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if in.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if err := s.sessions.Revoke(r.Context(), in.Token); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Package server exposes the dashboard over HTTP: a JSON API under /v1 and
// server-rendered HTML pages under /dashboard.
package server

import (
	"context"
	"log/slog"

	"github.com/groblegark/infradash/internal/auth"
	"github.com/groblegark/infradash/internal/events"
	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/service"
	"github.com/groblegark/infradash/internal/store"
)

// Server holds the services behind every HTTP route.
type Server struct {
	store      store.Store
	executions *service.ExecutionService
	profiles   *service.ProfileService
	sessions   *auth.Sessions
	publisher  events.Publisher
	adminToken string
}

// NewServer wires a Server over the given store. When adminToken is empty the
// admin endpoints (user and session management) are disabled.
func NewServer(s store.Store, sessions *auth.Sessions, publisher events.Publisher, adminToken string) *Server {
	resolver := auth.ContextResolver{}
	return &Server{
		store:      s,
		executions: service.NewExecutionService(resolver, s),
		profiles:   service.NewProfileService(resolver, s),
		sessions:   sessions,
		publisher:  publisher,
		adminToken: adminToken,
	}
}

// publish emits an event best-effort; a failure is logged, never surfaced to
// the request that triggered it.
func (s *Server) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// saveExecution runs the save use case and emits the saved event.
func (s *Server) saveExecution(ctx context.Context, recordType, description string) (*model.ExecutionRecord, error) {
	rec, err := s.executions.SaveExecutionResult(ctx, recordType, description)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicExecutionSaved, events.ExecutionSaved{Record: rec})
	return rec, nil
}

// deleteExecution runs the delete use case and emits the deleted event.
func (s *Server) deleteExecution(ctx context.Context, id, ownerID string) error {
	if err := s.executions.DeleteRecord(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.TopicExecutionDeleted, events.ExecutionDeleted{RecordID: id, OwnerID: ownerID})
	return nil
}

// updateProfile runs the profile update use case and emits the updated event.
func (s *Server) updateProfile(ctx context.Context, profile model.UserProfile) (*model.User, error) {
	user, err := s.profiles.Update(ctx, profile)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicProfileUpdated, events.ProfileUpdated{
		UserID:  user.ID,
		Profile: model.UserProfile{FullName: user.FullName, Email: user.Email},
	})
	return user, nil
}

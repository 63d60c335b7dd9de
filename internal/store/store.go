package store

import (
	"context"
	"time"

	"github.com/groblegark/infradash/internal/model"
)

// Store defines the persistence interface for execution records, users,
// and sessions. Every record operation carries the owner id predicate; the
// store never returns or mutates a row the owner does not hold.
type Store interface {
	// Execution records
	CreateRecord(ctx context.Context, rec *model.ExecutionRecord) error
	GetRecord(ctx context.Context, id, ownerID string) (*model.ExecutionRecord, error)
	ListRecords(ctx context.Context, ownerID string) ([]*model.ExecutionRecord, error) // created_at descending
	DeleteRecord(ctx context.Context, id, ownerID string) error                        // idempotent; zero rows is success

	// Users
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	UpdateUserProfile(ctx context.Context, id string, profile model.UserProfile) (*model.User, error)

	// Sessions
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionUser(ctx context.Context, tokenHash string, now time.Time) (string, error)
	DeleteSession(ctx context.Context, tokenHash string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}

package events

import (
	"context"

	"github.com/groblegark/infradash/internal/model"
)

// Event topic constants
const (
	TopicExecutionSaved   = "infradash.execution.saved"
	TopicExecutionDeleted = "infradash.execution.deleted"
	TopicProfileUpdated   = "infradash.profile.updated"
)

// Event types

type ExecutionSaved struct {
	Record *model.ExecutionRecord `json:"record"`
}

type ExecutionDeleted struct {
	RecordID string `json:"record_id"`
	OwnerID  string `json:"owner_id"`
}

type ProfileUpdated struct {
	UserID  string            `json:"user_id"`
	Profile model.UserProfile `json:"profile"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

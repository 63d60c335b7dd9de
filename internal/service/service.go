// Package service orchestrates identity resolution and the record store.
// Every read and write is scoped to the resolved caller; an owner id supplied
// by a client is never trusted.
package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/groblegark/infradash/internal/auth"
	"github.com/groblegark/infradash/internal/idgen"
	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/store"
)

// ExecutionService implements the execution record use cases: save a result,
// list the caller's history, fetch one record, delete one record.
type ExecutionService struct {
	resolver auth.Resolver
	store    store.Store
}

// NewExecutionService wires the service to its collaborators. Both are
// injected so tests can substitute fakes.
func NewExecutionService(resolver auth.Resolver, s store.Store) *ExecutionService {
	return &ExecutionService{resolver: resolver, store: s}
}

// SaveExecutionResult stores a new execution record for the calling user.
// The owner id is always the resolved identity. The description payload is
// stored as opaque text; its shape is checked only at render time.
func (s *ExecutionService) SaveExecutionResult(ctx context.Context, recordType, description string) (*model.ExecutionRecord, error) {
	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	rec := &model.ExecutionRecord{
		OwnerID:     userID,
		Type:        strings.TrimSpace(recordType),
		Description: description,
	}
	if err := model.ValidateRecord(rec); err != nil {
		return nil, err
	}

	id, err := idgen.NewRecordID()
	if err != nil {
		return nil, err
	}
	rec.ID = id

	if err := s.store.CreateRecord(ctx, rec); err != nil {
		return nil, newPersistenceError("save execution", err)
	}
	return rec, nil
}

// ListHistory returns the calling user's records, newest first. A store
// failure is reported as an error, never collapsed into an empty list.
func (s *ExecutionService) ListHistory(ctx context.Context) ([]*model.ExecutionRecord, error) {
	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	recs, err := s.store.ListRecords(ctx, userID)
	if err != nil {
		return nil, newPersistenceError("fetch history", err)
	}
	return recs, nil
}

// GetRecord fetches one record scoped to the calling user. A record owned by
// another user returns the same ErrNotFound as a nonexistent id.
func (s *ExecutionService) GetRecord(ctx context.Context, id string) (*model.ExecutionRecord, error) {
	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := s.store.GetRecord(ctx, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, newPersistenceError("load record", err)
	}
	return rec, nil
}

// DeleteRecord deletes one record scoped to the calling user. Deleting a
// record that is already gone, or that belongs to someone else, succeeds the
// same way deleting one's own record does.
func (s *ExecutionService) DeleteRecord(ctx context.Context, id string) error {
	userID, err := s.resolver.CurrentUser(ctx)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRecord(ctx, id, userID); err != nil {
		return newPersistenceError("delete record", err)
	}
	return nil
}

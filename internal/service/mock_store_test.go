package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/store"
)

// mockStore is an in-memory store.Store for service tests.
type mockStore struct {
	records  map[string]*model.ExecutionRecord
	users    map[string]*model.User
	sessions map[string]*model.Session

	// Forced errors, when non-nil.
	createErr error
	listErr   error
	getErr    error
	deleteErr error
	updateErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		records:  make(map[string]*model.ExecutionRecord),
		users:    make(map[string]*model.User),
		sessions: make(map[string]*model.Session),
	}
}

func (m *mockStore) CreateRecord(_ context.Context, rec *model.ExecutionRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	clone := *rec
	m.records[rec.ID] = &clone
	return nil
}

func (m *mockStore) GetRecord(_ context.Context, id, ownerID string) (*model.ExecutionRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	rec, ok := m.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	clone := *rec
	return &clone, nil
}

func (m *mockStore) ListRecords(_ context.Context, ownerID string) ([]*model.ExecutionRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var recs []*model.ExecutionRecord
	for _, r := range m.records {
		if r.OwnerID == ownerID {
			clone := *r
			recs = append(recs, &clone)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

func (m *mockStore) DeleteRecord(_ context.Context, id, ownerID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if rec, ok := m.records[id]; ok && rec.OwnerID == ownerID {
		delete(m.records, id)
	}
	return nil
}

func (m *mockStore) CreateUser(_ context.Context, user *model.User) error {
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *u
	return &clone, nil
}

func (m *mockStore) ListUsers(_ context.Context) ([]*model.User, error) {
	var users []*model.User
	for _, u := range m.users {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

func (m *mockStore) UpdateUserProfile(_ context.Context, id string, profile model.UserProfile) (*model.User, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u.FullName = profile.FullName
	u.Email = profile.Email
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}

func (m *mockStore) CreateSession(_ context.Context, s *model.Session) error {
	clone := *s
	m.sessions[s.TokenHash] = &clone
	return nil
}

func (m *mockStore) GetSessionUser(_ context.Context, tokenHash string, now time.Time) (string, error) {
	s, ok := m.sessions[tokenHash]
	if !ok || s.Expired(now) {
		return "", sql.ErrNoRows
	}
	return s.UserID, nil
}

func (m *mockStore) DeleteSession(_ context.Context, tokenHash string) error {
	delete(m.sessions, tokenHash)
	return nil
}

func (m *mockStore) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for hash, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, hash)
			n++
		}
	}
	return n, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

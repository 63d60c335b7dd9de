package sync

import (
	"context"
	"database/sql"
	"time"

	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/store"
)

// mockStore is an in-memory store.Store for sync tests.
type mockStore struct {
	records map[string]*model.ExecutionRecord
	users   map[string]*model.User

	listUsersErr   error
	listRecordsErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		records: make(map[string]*model.ExecutionRecord),
		users:   make(map[string]*model.User),
	}
}

func (m *mockStore) CreateRecord(_ context.Context, rec *model.ExecutionRecord) error {
	m.records[rec.ID] = rec
	return nil
}

func (m *mockStore) GetRecord(_ context.Context, id, ownerID string) (*model.ExecutionRecord, error) {
	rec, ok := m.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	return rec, nil
}

func (m *mockStore) ListRecords(_ context.Context, ownerID string) ([]*model.ExecutionRecord, error) {
	if m.listRecordsErr != nil {
		return nil, m.listRecordsErr
	}
	var recs []*model.ExecutionRecord
	for _, r := range m.records {
		if r.OwnerID == ownerID {
			recs = append(recs, r)
		}
	}
	return recs, nil
}

func (m *mockStore) DeleteRecord(_ context.Context, id, ownerID string) error {
	if rec, ok := m.records[id]; ok && rec.OwnerID == ownerID {
		delete(m.records, id)
	}
	return nil
}

func (m *mockStore) CreateUser(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockStore) ListUsers(_ context.Context) ([]*model.User, error) {
	if m.listUsersErr != nil {
		return nil, m.listUsersErr
	}
	var users []*model.User
	for _, u := range m.users {
		users = append(users, u)
	}
	return users, nil
}

func (m *mockStore) UpdateUserProfile(_ context.Context, id string, profile model.UserProfile) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	u.FullName = profile.FullName
	u.Email = profile.Email
	return u, nil
}

func (m *mockStore) CreateSession(_ context.Context, _ *model.Session) error { return nil }

func (m *mockStore) GetSessionUser(_ context.Context, _ string, _ time.Time) (string, error) {
	return "", sql.ErrNoRows
}

func (m *mockStore) DeleteSession(_ context.Context, _ string) error { return nil }

func (m *mockStore) DeleteExpiredSessions(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

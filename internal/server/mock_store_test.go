package server

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/groblegark/infradash/internal/events"
	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/store"
)

// mockStore is an in-memory store.Store for handler tests.
type mockStore struct {
	mu       sync.Mutex
	records  map[string]*model.ExecutionRecord
	users    map[string]*model.User
	sessions map[string]*model.Session

	listErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		records:  make(map[string]*model.ExecutionRecord),
		users:    make(map[string]*model.User),
		sessions: make(map[string]*model.Session),
	}
}

func (m *mockStore) CreateRecord(_ context.Context, rec *model.ExecutionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	clone := *rec
	m.records[rec.ID] = &clone
	return nil
}

func (m *mockStore) GetRecord(_ context.Context, id, ownerID string) (*model.ExecutionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok || rec.OwnerID != ownerID {
		return nil, sql.ErrNoRows
	}
	clone := *rec
	return &clone, nil
}

func (m *mockStore) ListRecords(_ context.Context, ownerID string) ([]*model.ExecutionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[id]; ok && rec.OwnerID == ownerID {
		delete(m.records, id)
	}
	return nil
}

func (m *mockStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockStore) GetUser(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *u
	return &clone, nil
}

func (m *mockStore) ListUsers(_ context.Context) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []*model.User
	for _, u := range m.users {
		clone := *u
		users = append(users, &clone)
	}
	return users, nil
}

func (m *mockStore) UpdateUserProfile(_ context.Context, id string, profile model.UserProfile) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *s
	m.sessions[s.TokenHash] = &clone
	return nil
}

func (m *mockStore) GetSessionUser(_ context.Context, tokenHash string, now time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[tokenHash]
	if !ok || s.Expired(now) {
		return "", sql.ErrNoRows
	}
	return s.UserID, nil
}

func (m *mockStore) DeleteSession(_ context.Context, tokenHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, tokenHash)
	return nil
}

func (m *mockStore) DeleteExpiredSessions(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
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

// capturePublisher records every published event.
type capturePublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *capturePublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

var _ events.Publisher = (*capturePublisher)(nil)

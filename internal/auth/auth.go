// Package auth resolves request identities from session tokens.
//
// The identity provider proper (whatever issues credentials to humans) sits
// outside this service; it exchanges its own authentication for a session row
// via the admin API. From that point on the session token is the only
// credential, and authorization decisions never trust a client-asserted
// user id.
package auth

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/groblegark/infradash/internal/idgen"
	"github.com/groblegark/infradash/internal/model"
)

// ErrUnauthenticated is the definite "no identity" signal. Callers must treat
// it as distinct from store failures.
var ErrUnauthenticated = errors.New("unauthenticated")

// SessionCookie is the cookie carrying the session token for HTML pages.
// The JSON API uses an Authorization: Bearer header instead.
const SessionCookie = "infradash_session"

// Resolver produces the authenticated user id for a request context, or
// ErrUnauthenticated. Implementations must not cache beyond one request.
type Resolver interface {
	CurrentUser(ctx context.Context) (string, error)
}

type ctxKey struct{}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID extracts the authenticated user id stashed by the session middleware.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// ContextResolver reads the principal placed in the context by the session
// middleware. It is the production Resolver; tests substitute fakes.
type ContextResolver struct{}

// CurrentUser implements Resolver.
func (ContextResolver) CurrentUser(ctx context.Context) (string, error) {
	id, ok := UserID(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	return id, nil
}

// HashToken returns the hex SHA-256 digest of a session token, the only form
// ever written to the database.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// SessionStore is the subset of the store the session layer needs.
type SessionStore interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetSessionUser(ctx context.Context, tokenHash string, now time.Time) (string, error)
	DeleteSession(ctx context.Context, tokenHash string) error
}

// Sessions authenticates tokens and issues or revokes session rows.
type Sessions struct {
	store SessionStore
	ttl   time.Duration
	now   func() time.Time
}

// NewSessions creates a session layer over the given store. ttl bounds the
// lifetime of issued sessions.
func NewSessions(s SessionStore, ttl time.Duration) *Sessions {
	return &Sessions{store: s, ttl: ttl, now: time.Now}
}

// Authenticate resolves a raw token to a user id. An unknown or expired token
// is ErrUnauthenticated; store failures propagate as-is.
func (s *Sessions) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	userID, err := s.store.GetSessionUser(ctx, HashToken(token), s.now().UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("look up session: %w", err)
	}
	return userID, nil
}

// Issue creates a session for the given user and returns the raw token. The
// token is returned exactly once; only its digest is stored.
func (s *Sessions) Issue(ctx context.Context, userID string) (*model.Session, string, error) {
	token, err := idgen.NewSessionToken()
	if err != nil {
		return nil, "", err
	}
	session := &model.Session{
		TokenHash: HashToken(token),
		UserID:    userID,
		ExpiresAt: s.now().UTC().Add(s.ttl),
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return session, token, nil
}

// Revoke deletes the session for a raw token. Revoking an unknown token is
// not an error.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	return s.store.DeleteSession(ctx, HashToken(token))
}

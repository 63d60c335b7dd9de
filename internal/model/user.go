package model

import "time"

// User is an account row. Profile fields are trimmed before persistence.
type User struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProfile is the editable subset of a User.
type UserProfile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Session associates an opaque token with a user for its lifetime.
// Only the SHA-256 digest of the token is stored.
type Session struct {
	TokenHash string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

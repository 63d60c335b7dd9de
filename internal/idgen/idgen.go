// Package idgen provides short, URL-safe unique ID generation backed by nanoid.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the entity kinds stored in the database.
const (
	RecordPrefix = "ex-"
	UserPrefix   = "us-"
)

// Alphabet defines the character set used for the random portion of an ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// tokenLength is the size of session tokens; long enough to be unguessable.
const tokenLength = 32

// NewRecordID returns a new unique execution record ID.
func NewRecordID() (string, error) {
	return generateWithPrefix(RecordPrefix)
}

// NewUserID returns a new unique user ID.
func NewUserID() (string, error) {
	return generateWithPrefix(UserPrefix)
}

// NewSessionToken returns a new opaque session token.
func NewSessionToken() (string, error) {
	token, err := nanoid.Generate(Alphabet, tokenLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return token, nil
}

func generateWithPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

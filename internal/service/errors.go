package service

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound is returned when a record does not exist for the calling user.
// A record owned by someone else yields the same error, so callers cannot
// infer the existence of data they are not entitled to.
var ErrNotFound = errors.New("record not found")

// PersistenceError wraps a store-level failure, preserving the driver's
// message and code for operators. Transport layers log it and surface a
// generic message to the end user.
type PersistenceError struct {
	Op      string // the operation that failed, e.g. "save execution"
	Message string
	Code    string // driver error code when available
	err     error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code %s)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *PersistenceError) Unwrap() error { return e.err }

// newPersistenceError builds a PersistenceError, extracting the SQLSTATE code
// when the underlying error came from the postgres driver.
func newPersistenceError(op string, err error) *PersistenceError {
	pe := &PersistenceError{Op: op, Message: err.Error(), err: err}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		pe.Code = string(pqErr.Code)
	}
	return pe
}

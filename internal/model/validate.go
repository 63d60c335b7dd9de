package model

import (
	"net/mail"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateRecord checks an ExecutionRecord for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the record is valid.
func ValidateRecord(r *ExecutionRecord) error {
	var ve ValidationError

	if strings.TrimSpace(r.OwnerID) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "owner_id", Message: "is required"})
	}

	// Type: required, short category label.
	typ := strings.TrimSpace(r.Type)
	if typ == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "type", Message: "is required"})
	} else if len([]rune(typ)) > 100 {
		ve.Errors = append(ve.Errors, FieldError{Field: "type", Message: "must be 100 characters or fewer"})
	}

	// Description: required; shape is not enforced here (opaque to the store).
	if r.Description == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "description", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// ValidateProfile checks a UserProfile before persistence. Fields are expected
// to be trimmed by the caller; trimming is not repeated here.
func ValidateProfile(p *UserProfile) error {
	var ve ValidationError

	if p.FullName == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "full_name", Message: "is required"})
	}
	if p.Email == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "email", Message: "is required"})
	} else if _, err := mail.ParseAddress(p.Email); err != nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "email", Message: "is not a valid address"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}

// TrimProfile returns a copy of p with surrounding whitespace removed from
// every field, the form persisted to the store.
func TrimProfile(p UserProfile) UserProfile {
	return UserProfile{
		FullName: strings.TrimSpace(p.FullName),
		Email:    strings.TrimSpace(p.Email),
	}
}

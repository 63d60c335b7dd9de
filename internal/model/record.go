package model

import (
	"strings"
	"time"
)

// ExecutionRecord is a single stored infrastructure execution result.
// The Description column holds the raw result payload as opaque text; it is
// decoded on read via DecodeResult, never validated by the store.
type ExecutionRecord struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisplayType returns the record type formatted for display, with separator
// characters replaced by spaces (e.g. "scale_up" -> "scale up").
func (r *ExecutionRecord) DisplayType() string {
	return DisplayLabel(r.Type)
}

// DisplayLabel replaces "-" and "_" separators in an identifier with spaces.
func DisplayLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, s)
}

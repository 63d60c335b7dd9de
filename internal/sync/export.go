package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version        string    `json:"version"`
	Type           string    `json:"type"`
	Timestamp      time.Time `json:"timestamp"`
	UserCount      int       `json:"user_count"`
	ExecutionCount int       `json:"execution_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all users and their execution records from the store as
// JSONL to w. Users are sorted by ID, and each user's records follow their
// user line, sorted by ID, so the output is stable across runs.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})

	// Fetch everything up front so the header can carry totals.
	recordsByUser := make(map[string][]*model.ExecutionRecord, len(users))
	total := 0
	for _, u := range users {
		recs, err := s.ListRecords(ctx, u.ID)
		if err != nil {
			return fmt.Errorf("list records for %s: %w", u.ID, err)
		}
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].ID < recs[j].ID
		})
		recordsByUser[u.ID] = recs
		total += len(recs)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:        "1",
		Type:           "header",
		Timestamp:      time.Now().UTC(),
		UserCount:      len(users),
		ExecutionCount: total,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, u := range users {
		if err := enc.Encode(record{Type: "user", Data: u}); err != nil {
			return fmt.Errorf("encode user %s: %w", u.ID, err)
		}
		for _, r := range recordsByUser[u.ID] {
			if err := enc.Encode(record{Type: "execution", Data: r}); err != nil {
				return fmt.Errorf("encode execution %s: %w", r.ID, err)
			}
		}
	}

	return nil
}

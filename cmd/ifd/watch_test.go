package main

import (
	"testing"
	"time"

	"github.com/groblegark/infradash/internal/client"
	"github.com/groblegark/infradash/internal/model"
)

func execWithID(id string) client.Execution {
	return client.Execution{
		ExecutionRecord: model.ExecutionRecord{ID: id, CreatedAt: time.Now().UTC()},
	}
}

func TestDiffExecutions(t *testing.T) {
	seen := make(map[string]time.Time)

	first := diffExecutions([]client.Execution{execWithID("ex-1"), execWithID("ex-2")}, seen)
	if len(first) != 2 {
		t.Fatalf("first diff = %d records, want 2", len(first))
	}

	// Unchanged list produces no output.
	second := diffExecutions([]client.Execution{execWithID("ex-1"), execWithID("ex-2")}, seen)
	if len(second) != 0 {
		t.Fatalf("second diff = %d records, want 0", len(second))
	}

	// Only the new record is reported.
	third := diffExecutions([]client.Execution{execWithID("ex-3"), execWithID("ex-1"), execWithID("ex-2")}, seen)
	if len(third) != 1 || third[0].ID != "ex-3" {
		t.Fatalf("third diff = %+v, want just ex-3", third)
	}
}

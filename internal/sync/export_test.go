package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/groblegark/infradash/internal/model"
)

func TestExportJSONL_Empty(t *testing.T) {
	ms := newMockStore()
	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (header only), got %d", len(lines))
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.Version != "1" || h.Type != "header" || h.UserCount != 0 || h.ExecutionCount != 0 {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestExportJSONL_UsersAndRecords(t *testing.T) {
	ms := newMockStore()
	now := time.Now().UTC()

	// Add users out of ID order to verify sorting.
	ms.users["us-zzz"] = &model.User{ID: "us-zzz", FullName: "Zed", Email: "zed@example.com", CreatedAt: now}
	ms.users["us-aaa"] = &model.User{ID: "us-aaa", FullName: "Ada", Email: "ada@example.com", CreatedAt: now}

	ms.records["ex-2"] = &model.ExecutionRecord{ID: "ex-2", OwnerID: "us-aaa", Type: "deploy", Description: `{"outputs":{}}`, CreatedAt: now}
	ms.records["ex-1"] = &model.ExecutionRecord{ID: "ex-1", OwnerID: "us-aaa", Type: "scale_up", Description: `{"outputs":{}}`, CreatedAt: now}
	ms.records["ex-3"] = &model.ExecutionRecord{ID: "ex-3", OwnerID: "us-zzz", Type: "teardown", Description: "", CreatedAt: now}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// 1 header + 2 users + 3 executions = 6 lines
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	if h.UserCount != 2 || h.ExecutionCount != 3 {
		t.Fatalf("header counts: users=%d executions=%d", h.UserCount, h.ExecutionCount)
	}

	// Line types: user us-aaa, its two executions sorted by ID, then us-zzz.
	wantTypes := []string{"user", "execution", "execution", "user", "execution"}
	var recs []record
	for i, line := range lines[1:] {
		var r record
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			t.Fatalf("unmarshal line %d: %v", i+1, err)
		}
		if r.Type != wantTypes[i] {
			t.Fatalf("line %d type = %q, want %q", i+1, r.Type, wantTypes[i])
		}
		recs = append(recs, r)
	}

	roundTrip := func(data interface{}, dst interface{}) {
		t.Helper()
		raw, _ := json.Marshal(data)
		if err := json.Unmarshal(raw, dst); err != nil {
			t.Fatalf("unmarshal data: %v", err)
		}
	}

	var u1 model.User
	roundTrip(recs[0].Data, &u1)
	if u1.ID != "us-aaa" {
		t.Errorf("first user = %q, want us-aaa", u1.ID)
	}

	var e1, e2 model.ExecutionRecord
	roundTrip(recs[1].Data, &e1)
	roundTrip(recs[2].Data, &e2)
	if e1.ID != "ex-1" || e2.ID != "ex-2" {
		t.Errorf("executions not sorted: got %q, %q", e1.ID, e2.ID)
	}
	if e1.OwnerID != "us-aaa" {
		t.Errorf("execution owner = %q", e1.OwnerID)
	}
}

func TestExportJSONL_StoreError(t *testing.T) {
	ms := newMockStore()
	ms.users["us-1"] = &model.User{ID: "us-1", Email: "a@example.com"}
	ms.listRecordsErr = context.DeadlineExceeded

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err == nil {
		t.Fatal("expected error from failing store")
	}
}

func nonEmptyLines(s string) []string {
	var result []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
	}
	return result
}

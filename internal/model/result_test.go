package model

import (
	"encoding/json"
	"testing"
)

func TestDecodeResultEmpty(t *testing.T) {
	d := DecodeResult("")
	if d.State != ResultEmpty {
		t.Fatalf("DecodeResult(\"\") state = %v, want ResultEmpty", d.State)
	}
	if d.Result != nil || d.Err != nil {
		t.Fatalf("empty decode carried result=%v err=%v", d.Result, d.Err)
	}
}

func TestDecodeResultCorrupt(t *testing.T) {
	for _, raw := range []string{
		"{not json",
		"[1, 2]",
		"42",
		`"a string"`,
		`{"outputs": "not an object"}`,
		`{"outputs": {}} trailing`,
		`{"outputs": {"a": }`,
	} {
		d := DecodeResult(raw)
		if d.State != ResultCorrupt {
			t.Errorf("DecodeResult(%q) state = %v, want ResultCorrupt", raw, d.State)
			continue
		}
		if d.Message != CorruptResultMessage {
			t.Errorf("DecodeResult(%q) message = %q", raw, d.Message)
		}
		if d.Err == nil {
			t.Errorf("DecodeResult(%q) has no underlying error for logging", raw)
		}
	}
}

func TestDecodeResultValid(t *testing.T) {
	d := DecodeResult(`{"outputs":{"a":1}}`)
	if d.State != ResultValid {
		t.Fatalf("state = %v, want ResultValid", d.State)
	}
	if len(d.Result.Steps) != 1 {
		t.Fatalf("steps = %d, want 1", len(d.Result.Steps))
	}
	if d.Result.Steps[0].ID != "a" || string(d.Result.Steps[0].Output) != "1" {
		t.Fatalf("step = %+v", d.Result.Steps[0])
	}
}

func TestDecodeResultMissingOutputs(t *testing.T) {
	for _, raw := range []string{`{}`, `{"other": [1,2]}`, `{"outputs": null}`} {
		d := DecodeResult(raw)
		if d.State != ResultValid {
			t.Errorf("DecodeResult(%q) state = %v, want ResultValid", raw, d.State)
			continue
		}
		if len(d.Result.Steps) != 0 {
			t.Errorf("DecodeResult(%q) steps = %v, want none", raw, d.Result.Steps)
		}
	}
}

func TestDecodeResultPreservesOrder(t *testing.T) {
	d := DecodeResult(`{"outputs":{"zeta":1,"alpha":2,"mid-point":3}}`)
	if d.State != ResultValid {
		t.Fatalf("state = %v, want ResultValid", d.State)
	}
	want := []string{"zeta", "alpha", "mid-point"}
	if len(d.Result.Steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(d.Result.Steps), len(want))
	}
	for i, id := range want {
		if d.Result.Steps[i].ID != id {
			t.Errorf("step[%d] = %q, want %q", i, d.Result.Steps[i].ID, id)
		}
	}
}

func TestStepStatus(t *testing.T) {
	d := DecodeResult(`{"outputs":{"ok_step":{"status":"failed"},"plain":{"x":1},"scalar":7}}`)
	if d.State != ResultValid {
		t.Fatalf("state = %v", d.State)
	}
	steps := d.Result.Steps
	if got := steps[0].DisplayStatus(); got != "failed" {
		t.Errorf("explicit status = %q, want failed", got)
	}
	if got := steps[1].DisplayStatus(); got != DefaultStepStatus {
		t.Errorf("object without status = %q, want %q", got, DefaultStepStatus)
	}
	if got := steps[2].DisplayStatus(); got != DefaultStepStatus {
		t.Errorf("scalar output status = %q, want %q", got, DefaultStepStatus)
	}
}

func TestStepLabel(t *testing.T) {
	s := Step{ID: "create-vpc_step"}
	if got := s.Label(); got != "create vpc step" {
		t.Errorf("Label() = %q", got)
	}
}

func TestStepOutputRoundTrip(t *testing.T) {
	d := DecodeResult(`{"outputs":{"step1":{"ok":true}}}`)
	if d.State != ResultValid {
		t.Fatalf("state = %v", d.State)
	}
	var out map[string]bool
	if err := json.Unmarshal(d.Result.Steps[0].Output, &out); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if !out["ok"] {
		t.Errorf("output = %v, want {ok:true}", out)
	}
}

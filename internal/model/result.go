package model

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ResultState classifies the outcome of decoding a stored result payload.
type ResultState int

const (
	// ResultEmpty means no payload was stored.
	ResultEmpty ResultState = iota
	// ResultValid means the payload decoded into an ExecutionResult.
	ResultValid
	// ResultCorrupt means the payload could not be decoded.
	ResultCorrupt
)

// DefaultStepStatus is shown for steps whose output carries no status field.
const DefaultStepStatus = "completed"

// CorruptResultMessage is the user-safe notice for undecodable payloads.
// The underlying parse error is logged, never shown to the end user.
const CorruptResultMessage = "The stored result data is corrupted and cannot be displayed."

// Step is one entry of a decoded execution result.
type Step struct {
	ID     string          `json:"id"`
	Status string          `json:"status,omitempty"`
	Output json.RawMessage `json:"output"`
}

// Label returns the step identifier formatted for display.
func (s Step) Label() string {
	return DisplayLabel(s.ID)
}

// DisplayStatus returns the step's status field, or DefaultStepStatus when
// the output carried none. The payload historically has no per-step status;
// this is the only place the "completed" default is applied.
func (s Step) DisplayStatus() string {
	if s.Status != "" {
		return s.Status
	}
	return DefaultStepStatus
}

// ExecutionResult is the decoded shape of a record's description payload.
// Steps preserve the insertion order of the parsed "outputs" mapping.
type ExecutionResult struct {
	Steps []Step `json:"steps"`
}

// Decoded is the exhaustive three-way result of DecodeResult. Callers switch
// on State; there is no fourth fallback.
type Decoded struct {
	State   ResultState
	Result  *ExecutionResult // set when State is ResultValid
	Message string           // user-safe notice, set when State is ResultCorrupt
	Err     error            // underlying parse error, for operator logs only
}

// DecodeResult decodes a stored description payload.
//
// An empty payload yields ResultEmpty. A JSON object yields ResultValid; a
// missing or null "outputs" key is an empty mapping, not corruption. Anything
// that fails to parse, or parses to a non-object, yields ResultCorrupt with a
// user-safe message.
func DecodeResult(raw string) Decoded {
	if raw == "" {
		return Decoded{State: ResultEmpty}
	}

	dec := json.NewDecoder(strings.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return corruptResult(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return corruptResult(fmt.Errorf("top-level value is %v, not an object", tok))
	}

	var result ExecutionResult
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return corruptResult(err)
		}
		key, _ := keyTok.(string)

		if key == "outputs" {
			steps, err := decodeSteps(dec)
			if err != nil {
				return corruptResult(err)
			}
			result.Steps = steps
			continue
		}

		// Unrecognized keys are skipped, not rejected.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return corruptResult(err)
		}
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return corruptResult(err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		return corruptResult(fmt.Errorf("unexpected data after result object: %v", tok))
	}

	return Decoded{State: ResultValid, Result: &result}
}

// decodeSteps consumes the value of the "outputs" key, preserving key order.
func decodeSteps(dec *json.Decoder) ([]Step, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		// "outputs": null is an empty mapping.
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("outputs is %v, not an object", tok)
	}

	var steps []Step
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		id, _ := keyTok.(string)

		var out json.RawMessage
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		steps = append(steps, Step{ID: id, Status: stepStatus(out), Output: out})
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, err
	}
	return steps, nil
}

// stepStatus extracts the optional string "status" field from an object-shaped
// step output. Non-object outputs have no status.
func stepStatus(out json.RawMessage) string {
	var probe struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(out, &probe); err != nil {
		return ""
	}
	return probe.Status
}

func corruptResult(err error) Decoded {
	return Decoded{State: ResultCorrupt, Message: CorruptResultMessage, Err: err}
}

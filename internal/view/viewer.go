// Package view holds the presentation state machines behind the dashboard
// pages. The types here are transport-free: the HTTP layer feeds them input
// and renders whatever they report.
package view

import "github.com/groblegark/infradash/internal/model"

// ResultViewer presents one record's decoded result with at most one step
// expanded at a time.
type ResultViewer struct {
	decoded  model.Decoded
	expanded string
}

// NewResultViewer decodes the raw payload once and starts fully collapsed.
func NewResultViewer(raw string) *ResultViewer {
	return &ResultViewer{decoded: model.DecodeResult(raw)}
}

// State reports how the payload decoded.
func (v *ResultViewer) State() model.ResultState { return v.decoded.State }

// Message returns the user-safe notice for a corrupt payload, empty otherwise.
func (v *ResultViewer) Message() string { return v.decoded.Message }

// DecodeErr exposes the underlying parse error for operator logs.
func (v *ResultViewer) DecodeErr() error { return v.decoded.Err }

// Steps returns the decoded steps in stored order. Nil unless the payload
// decoded as valid.
func (v *ResultViewer) Steps() []model.Step {
	if v.decoded.State != model.ResultValid {
		return nil
	}
	return v.decoded.Result.Steps
}

// Toggle flips the expansion of the named step. Toggling the expanded step
// collapses it; toggling any other step switches the expansion there, so at
// most one step is ever open.
func (v *ResultViewer) Toggle(stepID string) {
	if v.expanded == stepID {
		v.expanded = ""
		return
	}
	v.SetExpanded(stepID)
}

// SetExpanded expands the named step directly, as when the step id arrives in
// a request parameter. Ids that do not name a decoded step collapse the view
// rather than erroring.
func (v *ResultViewer) SetExpanded(stepID string) {
	for _, s := range v.Steps() {
		if s.ID == stepID {
			v.expanded = stepID
			return
		}
	}
	v.expanded = ""
}

// IsExpanded reports whether the named step is the open one.
func (v *ResultViewer) IsExpanded(stepID string) bool {
	return stepID != "" && v.expanded == stepID
}

// ExpandedStep returns the open step, if any.
func (v *ResultViewer) ExpandedStep() (model.Step, bool) {
	for _, s := range v.Steps() {
		if s.ID == v.expanded {
			return s, true
		}
	}
	return model.Step{}, false
}

// ToggleTarget returns the step id a toggle control for stepID should submit:
// empty when the step is already open, so following the control collapses it.
func (v *ResultViewer) ToggleTarget(stepID string) string {
	if v.IsExpanded(stepID) {
		return ""
	}
	return stepID
}

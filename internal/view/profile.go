package view

import (
	"time"

	"github.com/groblegark/infradash/internal/model"
)

// EditorState is the lifecycle of a ProfileEditor.
type EditorState int

const (
	// EditorLoading means the persisted profile has not arrived yet.
	EditorLoading EditorState = iota
	// EditorReady means the editor holds a persisted snapshot and a draft.
	EditorReady
)

// savedWindow is how long the "saved" confirmation stays visible.
const savedWindow = 3 * time.Second

// ProfileEditor tracks a profile form: the persisted snapshot, the draft the
// user is typing into, and a short-lived saved confirmation. Concurrent edits
// are not detected; whichever save lands last wins.
type ProfileEditor struct {
	state     EditorState
	persisted model.UserProfile
	draft     model.UserProfile
	savedAt   time.Time
	now       func() time.Time
}

// NewProfileEditor starts in the loading state.
func NewProfileEditor() *ProfileEditor {
	return &ProfileEditor{now: time.Now}
}

// State reports the editor lifecycle state.
func (e *ProfileEditor) State() EditorState { return e.state }

// Load installs the persisted profile and resets the draft to match.
func (e *ProfileEditor) Load(p model.UserProfile) {
	e.persisted = p
	e.draft = p
	e.state = EditorReady
}

// Draft returns the profile as currently typed.
func (e *ProfileEditor) Draft() model.UserProfile { return e.draft }

// Persisted returns the last snapshot known to be stored.
func (e *ProfileEditor) Persisted() model.UserProfile { return e.persisted }

// SetFullName updates the draft name.
func (e *ProfileEditor) SetFullName(name string) { e.draft.FullName = name }

// SetEmail updates the draft email.
func (e *ProfileEditor) SetEmail(email string) { e.draft.Email = email }

// HasChanges reports whether saving would persist anything. The draft is
// compared trimmed, the way it would be stored, so surrounding whitespace
// alone is not a change.
func (e *ProfileEditor) HasChanges() bool {
	if e.state != EditorReady {
		return false
	}
	return model.TrimProfile(e.draft) != e.persisted
}

// Cancel discards the draft, restoring the persisted snapshot.
func (e *ProfileEditor) Cancel() {
	e.draft = e.persisted
}

// Save persists the trimmed draft through fn and, on success, adopts the
// stored profile as the new snapshot. When the draft matches the snapshot the
// save is skipped entirely and fn is never called.
func (e *ProfileEditor) Save(fn func(model.UserProfile) (model.UserProfile, error)) (bool, error) {
	if !e.HasChanges() {
		return false, nil
	}
	stored, err := fn(model.TrimProfile(e.draft))
	if err != nil {
		return false, err
	}
	e.persisted = stored
	e.draft = stored
	e.savedAt = e.now()
	return true, nil
}

// SavedRecently reports whether a save landed within the confirmation window.
func (e *ProfileEditor) SavedRecently() bool {
	if e.savedAt.IsZero() {
		return false
	}
	return e.now().Sub(e.savedAt) < savedWindow
}

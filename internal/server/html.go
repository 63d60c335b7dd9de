package server

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/groblegark/infradash/internal/auth"
	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/service"
	"github.com/groblegark/infradash/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// renderPage executes a template, falling back to a plain 500 when rendering
// itself fails.
func renderPage(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template render failed", "template", name, "error", err)
	}
}

// requirePage resolves the page visitor, rendering the denial page when the
// request carries no valid session.
func requirePage(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		renderPage(w, http.StatusUnauthorized, "denied.html", nil)
		return "", false
	}
	return userID, true
}

// renderPageError maps a service failure onto an HTML page.
func renderPageError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		renderPage(w, http.StatusUnauthorized, "denied.html", nil)
	case errors.Is(err, service.ErrNotFound):
		renderPage(w, http.StatusNotFound, "error.html", map[string]string{
			"Title":   "Not found",
			"Message": "That execution record does not exist.",
		})
	default:
		slog.Error("page request failed", "error", err)
		renderPage(w, http.StatusInternalServerError, "error.html", map[string]string{
			"Title":   "Something went wrong",
			"Message": "The dashboard could not load this page. Please retry.",
		})
	}
}

type executionRow struct {
	ID          string
	DisplayType string
	CreatedAt   time.Time
}

// handleExecutionsPage handles GET /dashboard/executions.
func (s *Server) handleExecutionsPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePage(w, r); !ok {
		return
	}

	recs, err := s.executions.ListHistory(r.Context())
	if err != nil {
		renderPageError(w, err)
		return
	}

	rows := make([]executionRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, executionRow{
			ID:          rec.ID,
			DisplayType: rec.DisplayType(),
			CreatedAt:   rec.CreatedAt,
		})
	}

	renderPage(w, http.StatusOK, "executions.html", map[string]any{
		"Rows": rows,
	})
}

type stepRow struct {
	Label    string
	Status   string
	Expanded bool
	// ToggleURL reloads the page with this step open, or closed when it is
	// already the open one.
	ToggleURL string
	Output    string
}

// handleExecutionPage handles GET /dashboard/executions/{id}. The open step
// travels in the "step" query parameter, so expansion state survives reloads
// and needs no client scripting.
func (s *Server) handleExecutionPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePage(w, r); !ok {
		return
	}

	id := r.PathValue("id")
	rec, err := s.executions.GetRecord(r.Context(), id)
	if err != nil {
		renderPageError(w, err)
		return
	}

	viewer := view.NewResultViewer(rec.Description)
	viewer.SetExpanded(r.URL.Query().Get("step"))
	if viewer.State() == model.ResultCorrupt {
		slog.Warn("stored result failed to decode", "id", rec.ID, "error", viewer.DecodeErr())
	}

	var steps []stepRow
	for _, step := range viewer.Steps() {
		row := stepRow{
			Label:     step.Label(),
			Status:    step.DisplayStatus(),
			Expanded:  viewer.IsExpanded(step.ID),
			ToggleURL: stepURL(rec.ID, viewer.ToggleTarget(step.ID)),
		}
		if row.Expanded {
			row.Output = prettyJSON(step.Output)
		}
		steps = append(steps, row)
	}

	renderPage(w, http.StatusOK, "execution.html", map[string]any{
		"ID":            rec.ID,
		"DisplayType":   rec.DisplayType(),
		"CreatedAt":     rec.CreatedAt,
		"State":         resultStateLabel(viewer.State()),
		"CorruptNotice": viewer.Message(),
		"Steps":         steps,
	})
}

// handleExecutionDelete handles POST /dashboard/executions/{id}/delete.
func (s *Server) handleExecutionDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requirePage(w, r)
	if !ok {
		return
	}

	if err := s.deleteExecution(r.Context(), r.PathValue("id"), userID); err != nil {
		renderPageError(w, err)
		return
	}

	http.Redirect(w, r, "/dashboard/executions", http.StatusSeeOther)
}

// handleProfilePage handles GET /dashboard/settings/profile.
func (s *Server) handleProfilePage(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePage(w, r); !ok {
		return
	}

	user, err := s.profiles.Get(r.Context())
	if err != nil {
		renderPageError(w, err)
		return
	}

	editor := view.NewProfileEditor()
	editor.Load(model.UserProfile{FullName: user.FullName, Email: user.Email})

	renderPage(w, http.StatusOK, "profile.html", map[string]any{
		"FullName": editor.Draft().FullName,
		"Email":    editor.Draft().Email,
		"Saved":    r.URL.Query().Get("saved") == "1",
		"Error":    "",
	})
}

// handleProfileSave handles POST /dashboard/settings/profile. A submission
// identical to the stored profile skips the store entirely; a validation
// failure re-renders the form with the rejected input intact.
func (s *Server) handleProfileSave(w http.ResponseWriter, r *http.Request) {
	if _, ok := requirePage(w, r); !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		renderPage(w, http.StatusBadRequest, "error.html", map[string]string{
			"Title":   "Bad request",
			"Message": "The submitted form could not be read.",
		})
		return
	}

	user, err := s.profiles.Get(r.Context())
	if err != nil {
		renderPageError(w, err)
		return
	}

	editor := view.NewProfileEditor()
	editor.Load(model.UserProfile{FullName: user.FullName, Email: user.Email})
	editor.SetFullName(r.PostFormValue("full_name"))
	editor.SetEmail(r.PostFormValue("email"))

	saved, err := editor.Save(func(p model.UserProfile) (model.UserProfile, error) {
		updated, err := s.updateProfile(r.Context(), p)
		if err != nil {
			return model.UserProfile{}, err
		}
		return model.UserProfile{FullName: updated.FullName, Email: updated.Email}, nil
	})
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			renderPage(w, http.StatusBadRequest, "profile.html", map[string]any{
				"FullName": editor.Draft().FullName,
				"Email":    editor.Draft().Email,
				"Saved":    false,
				"Error":    ve.Error(),
			})
			return
		}
		renderPageError(w, err)
		return
	}

	target := "/dashboard/settings/profile"
	if saved {
		target += "?saved=1"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// stepURL builds the detail-page URL with the given step open. An empty step
// yields the collapsed view.
func stepURL(recordID, step string) string {
	u := "/dashboard/executions/" + url.PathEscape(recordID)
	if step != "" {
		u += "?step=" + url.QueryEscape(step)
	}
	return u
}

// prettyJSON indents a step output for display. Invalid fragments render
// verbatim rather than disappearing.
func prettyJSON(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(buf)
}

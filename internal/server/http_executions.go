package server

import (
	"encoding/json"
	"net/http"

	"github.com/groblegark/infradash/internal/auth"
	"github.com/groblegark/infradash/internal/model"
)

type saveExecutionInput struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// executionView is the JSON shape of a record, with the display form of its
// type alongside the raw value.
type executionView struct {
	*model.ExecutionRecord
	DisplayType string `json:"display_type"`
}

func viewOf(rec *model.ExecutionRecord) executionView {
	return executionView{ExecutionRecord: rec, DisplayType: rec.DisplayType()}
}

// handleSaveExecution handles POST /v1/executions.
func (s *Server) handleSaveExecution(w http.ResponseWriter, r *http.Request) {
	var in saveExecutionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := s.saveExecution(r.Context(), in.Type, in.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, viewOf(rec))
}

// handleListExecutions handles GET /v1/executions.
func (s *Server) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	recs, err := s.executions.ListHistory(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// Ensure executions is never null in JSON output.
	views := make([]executionView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, viewOf(rec))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"executions": views,
		"total":      len(views),
	})
}

// handleGetExecution handles GET /v1/executions/{id}. The response carries the
// record plus its decoded result, so clients never parse the payload
// themselves.
func (s *Server) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	rec, err := s.executions.GetRecord(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	decoded := model.DecodeResult(rec.Description)
	out := map[string]any{
		"execution": viewOf(rec),
		"state":     resultStateLabel(decoded.State),
	}
	switch decoded.State {
	case model.ResultValid:
		out["result"] = decoded.Result
	case model.ResultCorrupt:
		out["message"] = decoded.Message
	}

	writeJSON(w, http.StatusOK, out)
}

// handleDeleteExecution handles DELETE /v1/executions/{id}. Deleting an id
// that no longer exists succeeds with the same 204.
func (s *Server) handleDeleteExecution(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	ownerID, _ := auth.UserID(r.Context())
	if err := s.deleteExecution(r.Context(), id, ownerID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func resultStateLabel(state model.ResultState) string {
	switch state {
	case model.ResultValid:
		return "valid"
	case model.ResultCorrupt:
		return "corrupt"
	default:
		return "empty"
	}
}

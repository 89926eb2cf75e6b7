package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docslice/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handleProcess ingests one document. The response bodies and status
// codes below are a frozen wire contract with the existing uploader:
// every failure is a 500 with a fixed error string, including the
// missing-authorization case.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if s.cfg.DatabaseURL == "" || s.cfg.StorageURL == "" || s.cfg.StorageServiceKey == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Missing environment variables.",
		})
		return
	}

	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "No authorization header passed",
		})
		return
	}

	var body struct {
		DocumentID int64 `json:"document_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	err := s.ingestor.Process(r.Context(), authorization, body.DocumentID)
	if err == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	var (
		authErr     *pipeline.AuthorizationError
		notFoundErr *pipeline.NotFoundError
		downloadErr *pipeline.DownloadError
		persistErr  *pipeline.PersistenceError
		processErr  *pipeline.ProcessError
	)
	switch {
	case errors.As(err, &authErr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "No authorization header passed",
		})
	case errors.As(err, &notFoundErr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Failed to find uploaded document",
		})
	case errors.As(err, &downloadErr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Failed to download storage object",
		})
	case errors.As(err, &persistErr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error": "Failed to save document sections",
		})
	case errors.As(err, &processErr):
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":    "Failed to process document",
			"details":  processErr.Err.Error(),
			"fileType": processErr.FileType,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Failed to process document",
			"details": err.Error(),
		})
	}
}

func (s *Server) handleRunStatus(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	run := s.ingestor.GetRun(runID)
	if run == nil {
		jsonError(w, "run not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, run.Snapshot())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

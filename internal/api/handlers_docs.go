package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists document metadata, most recent first.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	docs, err := s.documents.ListDocuments(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

// handleDeleteSections removes a document's section rows. Ingestion
// appends rather than replaces, so callers delete prior sections
// before re-processing a document.
func (s *Server) handleDeleteSections(w http.ResponseWriter, r *http.Request) {
	docID, err := strconv.ParseInt(chi.URLParam(r, "docID"), 10, 64)
	if err != nil {
		jsonError(w, "invalid document id", http.StatusBadRequest)
		return
	}

	deleted, err := s.documents.DeleteSections(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to delete sections: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"document_id":      docID,
		"sections_deleted": deleted,
	})
}

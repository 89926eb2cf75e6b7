package api

import "net/http"

func (s *Server) handleIngestStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"stats": s.ingestor.StatsSnapshot(),
	})
}

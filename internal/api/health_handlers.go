package api

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":          "ok",
		"audio_index":     s.Index != nil,
		"audio_syllables": len(s.Index),
	}
	if s.Index == nil {
		status["status"] = "degraded"
	}
	respondJSON(w, r, http.StatusOK, status)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.Catalog)
}

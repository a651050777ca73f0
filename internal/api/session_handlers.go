package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noamlvn/nikudquiz/internal/models"
)

type createSessionRequest struct {
	ProfileID int64                  `json:"profile_id" validate:"required,gt=0"`
	Filters   models.FilterSelection `json:"filters"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.QuizService.CreateSession(r.Context(), req.ProfileID, req.Filters)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, state)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.QuizService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleUpdateFilters(w http.ResponseWriter, r *http.Request) {
	var sel models.FilterSelection
	if err := s.decodeJSON(r, &sel); err != nil {
		handleError(w, r, err)
		return
	}

	state, err := s.QuizService.UpdateFilters(r.Context(), chi.URLParam(r, "id"), sel)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

func (s *Server) handleStartRound(w http.ResponseWriter, r *http.Request) {
	round, err := s.QuizService.StartRound(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, round)
}

type submitAnswerRequest struct {
	Chosen string `json:"chosen" validate:"required"`
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.QuizService.SubmitAnswer(r.Context(), chi.URLParam(r, "id"), req.Chosen)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.QuizService.EndSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, state)
}

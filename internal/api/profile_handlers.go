package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/noamlvn/nikudquiz/internal/errors"
	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/models"
)

type createProfileRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := s.decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.CreateProfile(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, profile)
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	respondJSON(w, r, http.StatusOK, profiles)
}

// profileCookie remembers the active learner across visits so the client can
// preselect it. Nothing server-side trusts it over the explicit profile_id.
const profileCookie = "nikudquiz_profile"

func (s *Server) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     profileCookie,
		Value:    strconv.FormatInt(id, 10),
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 180,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, r, http.StatusOK, profile)
}

func profileIDParam(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid profile id")
	}
	return id, nil
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := profileIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := s.ProfileService.GetProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	filter := models.AnswerFilter{ProfileID: id, Limit: 25}
	q := r.URL.Query()
	if syllable := q.Get("syllable"); syllable != "" {
		filter.Syllable = syllable
	}
	if sessionID := q.Get("session"); sessionID != "" {
		filter.SessionID = sessionID
	}
	switch q.Get("correct") {
	case "true":
		v := true
		filter.Correct = &v
	case "false":
		v := false
		filter.Correct = &v
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 && limit <= 200 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}

	answers, err := s.HistoryDB.ListAnswers(r.Context(), filter)
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}
	total, err := s.HistoryDB.CountAnswers(r.Context(), filter)
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}
	if answers == nil {
		answers = []models.Answer{}
	}

	log.Debug("history listed: profile_id=%d, returned=%d, total=%d", id, len(answers), total)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"answers": answers,
		"total":   total,
	})
}

func (s *Server) handleSyllableStats(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := s.ProfileService.GetProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	limit := 20
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}

	stats, err := s.HistoryDB.SyllableStats(r.Context(), id, limit)
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}
	if stats == nil {
		stats = []models.SyllableStat{}
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	id, err := profileIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := s.ProfileService.GetProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	limit := 25
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 200 {
		limit = l
	}

	sessions, err := s.HistoryDB.ListSessions(r.Context(), id, limit)
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}
	if sessions == nil {
		sessions = []models.QuizSession{}
	}
	respondJSON(w, r, http.StatusOK, sessions)
}

package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/noamlvn/nikudquiz/internal/audio"
	"github.com/noamlvn/nikudquiz/internal/db"
	"github.com/noamlvn/nikudquiz/internal/errors"
	"github.com/noamlvn/nikudquiz/internal/hebrew"
	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/models"
	"github.com/noamlvn/nikudquiz/internal/quiz"
)

// SessionState is a snapshot of a session for API responses.
type SessionState struct {
	SessionID    string     `json:"session_id"`
	ProfileID    int64      `json:"profile_id"`
	State        string     `json:"state"`
	AllowedCount int        `json:"allowed_count"`
	OptionCount  int        `json:"option_count"`
	Score        quiz.Score `json:"score"`
}

// RoundView is the client-facing shape of a round. The correct answer is
// deliberately absent.
type RoundView struct {
	Options []string `json:"options"`
}

// AnswerView is the outcome of a judged answer, with enough information for
// the client to highlight both the pick and the true answer.
type AnswerView struct {
	Correct         bool       `json:"correct"`
	Chosen          string     `json:"chosen"`
	CorrectSyllable string     `json:"correct_syllable"`
	Score           quiz.Score `json:"score"`
	CooldownMS      int64      `json:"cooldown_ms"`
}

// QuizService owns the live quiz sessions and their persistence.
type QuizService interface {
	CreateSession(ctx context.Context, profileID int64, sel models.FilterSelection) (*SessionState, error)
	UpdateFilters(ctx context.Context, sessionID string, sel models.FilterSelection) (*SessionState, error)
	StartRound(ctx context.Context, sessionID string) (*RoundView, error)
	SubmitAnswer(ctx context.Context, sessionID, chosen string) (*AnswerView, error)
	EndSession(ctx context.Context, sessionID string) (*SessionState, error)
	GetSession(ctx context.Context, sessionID string) (*SessionState, error)
}

type liveSession struct {
	mu        sync.Mutex
	engine    *quiz.Engine
	profileID int64
}

type quizService struct {
	db       *db.DB
	index    audio.Index
	indexErr error
	catalog  *hebrew.Catalog

	optionCount int
	cooldown    time.Duration

	mu       sync.Mutex
	sessions map[string]*liveSession
}

// NewQuizService creates a QuizService. indexErr carries the startup failure
// when the audio manifest could not be loaded; in that state every
// session-creating call reports the index as unavailable.
func NewQuizService(database *db.DB, index audio.Index, indexErr error, catalog *hebrew.Catalog, optionCount int, cooldown time.Duration) QuizService {
	if optionCount <= 0 {
		optionCount = quiz.DefaultOptionCount
	}
	return &quizService{
		db:          database,
		index:       index,
		indexErr:    indexErr,
		catalog:     catalog,
		optionCount: optionCount,
		cooldown:    cooldown,
		sessions:    map[string]*liveSession{},
	}
}

// resolveAllowed turns a filter selection into the allowed-syllable set,
// distinguishing "no vowels selected" from "nothing has audio".
func (s *quizService) resolveAllowed(sel models.FilterSelection) ([]string, error) {
	if len(sel.VowelIDs) == 0 {
		return nil, errors.NewNoVowelsSelectedError()
	}

	vowels, err := s.catalog.VowelsByID(sel.VowelIDs)
	if err != nil {
		return nil, errors.NewValidationError("vowels", err.Error())
	}

	consonants := s.catalog.ResolveConsonants(hebrew.ConsonantPolicy{
		Glyphs:        sel.Consonants,
		IncludeBase:   sel.IncludeBase,
		IncludeDagesh: sel.IncludeDagesh,
		IncludeFinal:  sel.IncludeFinal,
	})

	constructible := hebrew.Constructible(vowels, consonants)
	if len(constructible) == 0 {
		return nil, errors.NewBadRequestError("selected filters produce no syllables")
	}

	allowed := hebrew.GenerateAllowed(vowels, consonants, s.index)
	if len(allowed) == 0 {
		return nil, errors.NewNoAudioMatchesError()
	}
	return allowed, nil
}

func (s *quizService) get(sessionID string) (*liveSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

func (s *quizService) CreateSession(ctx context.Context, profileID int64, sel models.FilterSelection) (*SessionState, error) {
	log := logger.FromContext(ctx)

	if s.index == nil {
		return nil, errors.NewAudioIndexUnavailableError(s.indexErr)
	}

	profile, err := s.db.GetProfile(ctx, profileID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("profile", profileID)
	}

	allowed, err := s.resolveAllowed(sel)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	engine := quiz.NewEngine(allowed, s.optionCount, rand.New(rand.NewSource(time.Now().UnixNano())))
	engine.ResetSession()

	if err := s.db.InsertSession(ctx, models.QuizSession{ID: id, ProfileID: profileID}); err != nil {
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	s.sessions[id] = &liveSession{engine: engine, profileID: profileID}
	s.mu.Unlock()

	log.Info("session created: id=%s, profile_id=%d, allowed=%d", id, profileID, len(allowed))
	return s.snapshot(id, profileID, engine), nil
}

func (s *quizService) UpdateFilters(ctx context.Context, sessionID string, sel models.FilterSelection) (*SessionState, error) {
	log := logger.FromContext(ctx)

	sess, ok := s.get(sessionID)
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	allowed, err := s.resolveAllowed(sel)
	if err != nil {
		// The selection is still applied: the old allowed set no longer
		// reflects the filters, and any in-flight round must die with it.
		sess.engine.SetAllowed(nil)
		return nil, err
	}

	sess.engine.SetAllowed(allowed)
	log.Debug("filters updated: session_id=%s, allowed=%d", sessionID, len(allowed))
	return s.snapshot(sessionID, sess.profileID, sess.engine), nil
}

func (s *quizService) StartRound(ctx context.Context, sessionID string) (*RoundView, error) {
	log := logger.FromContext(ctx)

	sess, ok := s.get(sessionID)
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	round, err := sess.engine.StartRound()
	if err != nil {
		if insufficient, ok := err.(*quiz.InsufficientOptionsError); ok {
			return nil, errors.NewInsufficientOptionsError(insufficient.Have, insufficient.Needed)
		}
		if err == quiz.ErrRoundActive {
			return nil, errors.NewConflictError("a round is already active")
		}
		return nil, errors.NewInternalError(err)
	}

	log.Debug("round started: session_id=%s, options=%d", sessionID, len(round.Options))
	return &RoundView{Options: round.Options}, nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, sessionID, chosen string) (*AnswerView, error) {
	log := logger.FromContext(ctx)

	sess, ok := s.get(sessionID)
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := sess.engine.SubmitAnswer(chosen)
	if err != nil {
		return nil, errors.NewConflictError("no active round to answer")
	}

	if _, err := s.db.InsertAnswer(ctx, models.Answer{
		SessionID: sessionID,
		Syllable:  result.CorrectSyllable,
		Chosen:    result.Chosen,
		Correct:   result.Correct,
	}); err != nil {
		log.Warn("failed to persist answer: %v", err)
		// The round outcome stands even when history writing fails.
	}
	if err := s.db.UpdateSessionScore(ctx, sessionID, result.Score.Correct, result.Score.Total); err != nil {
		log.Warn("failed to persist session score: %v", err)
	}

	log.Info("answer judged: session_id=%s, correct=%t, score=%d/%d",
		sessionID, result.Correct, result.Score.Correct, result.Score.Total)
	return &AnswerView{
		Correct:         result.Correct,
		Chosen:          result.Chosen,
		CorrectSyllable: result.CorrectSyllable,
		Score:           result.Score,
		CooldownMS:      s.cooldown.Milliseconds(),
	}, nil
}

func (s *quizService) EndSession(ctx context.Context, sessionID string) (*SessionState, error) {
	log := logger.FromContext(ctx)

	sess, ok := s.get(sessionID)
	if !ok {
		return nil, errors.NewNotFoundError("session", sessionID)
	}

	sess.mu.Lock()
	score := sess.engine.Score()
	profileID := sess.profileID
	sess.mu.Unlock()

	if err := s.db.UpdateSessionScore(ctx, sessionID, score.Correct, score.Total); err != nil {
		log.Warn("failed to persist final score: %v", err)
	}
	if err := s.db.EndSession(ctx, sessionID, time.Now()); err != nil {
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	log.Info("session ended: id=%s, score=%d/%d", sessionID, score.Correct, score.Total)
	return &SessionState{
		SessionID: sessionID,
		ProfileID: profileID,
		State:     "ended",
		Score:     score,
	}, nil
}

func (s *quizService) GetSession(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, ok := s.get(sessionID)
	if ok {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		return s.snapshot(sessionID, sess.profileID, sess.engine), nil
	}

	// Ended sessions survive only in the database.
	row, err := s.db.GetSession(ctx, sessionID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if row == nil {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return &SessionState{
		SessionID: row.ID,
		ProfileID: row.ProfileID,
		State:     "ended",
		Score:     quiz.Score{Correct: row.CorrectCount, Total: row.TotalCount},
	}, nil
}

func (s *quizService) snapshot(id string, profileID int64, engine *quiz.Engine) *SessionState {
	return &SessionState{
		SessionID:    id,
		ProfileID:    profileID,
		State:        engine.State().String(),
		AllowedCount: engine.AllowedCount(),
		OptionCount:  engine.OptionCount(),
		Score:        engine.Score(),
	}
}

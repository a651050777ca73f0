package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/noamlvn/nikudquiz/internal/audio"
	"github.com/noamlvn/nikudquiz/internal/db"
	"github.com/noamlvn/nikudquiz/internal/hebrew"
	"github.com/noamlvn/nikudquiz/internal/services"
	"github.com/noamlvn/nikudquiz/internal/tts"
	"github.com/noamlvn/nikudquiz/internal/worker"
)

type Server struct {
	ProfileService     services.ProfileService
	QuizService        services.QuizService
	HistoryDB          *db.DB
	Catalog            *hebrew.Catalog
	Index              audio.Index
	AudioDir           string
	ManifestPath       string
	SynthPool          *worker.Pool
	Synth              tts.Synthesizer
	MaxConcurrentSynth int

	validate *validator.Validate
}

func (s *Server) Routes() http.Handler {
	s.validate = validator.New()

	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/catalog", s.handleCatalog)

	r.Get("/profiles", s.handleListProfiles)
	r.Post("/profiles", s.handleCreateProfile)
	r.Post("/profiles/{id}/select", s.handleSelectProfile)
	r.Get("/profiles/{id}/history", s.handleHistory)
	r.Get("/profiles/{id}/stats", s.handleSyllableStats)
	r.Get("/profiles/{id}/sessions", s.handleListSessions)

	r.Post("/sessions", s.handleCreateSession)
	r.Get("/sessions/{id}", s.handleGetSession)
	r.Post("/sessions/{id}/filters", s.handleUpdateFilters)
	r.Post("/sessions/{id}/round", s.handleStartRound)
	r.Post("/sessions/{id}/answer", s.handleSubmitAnswer)
	r.Post("/sessions/{id}/end", s.handleEndSession)

	r.Get("/audio/{syllable}", s.handleAudio)
	r.Post("/synthesize", s.handleSynthesize)

	return r
}

package api

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/noamlvn/nikudquiz/internal/errors"
	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/worker"
)

// handleAudio serves the recording for a syllable. The syllable arrives
// URL-escaped in the path; chi hands it back decoded.
func (s *Server) handleAudio(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if s.Index == nil {
		handleError(w, r, errors.NewAudioIndexUnavailableError(nil))
		return
	}

	syllable := chi.URLParam(r, "syllable")
	file, ok := s.Index.File(syllable)
	if !ok {
		handleError(w, r, errors.NewNotFoundError("audio", syllable))
		return
	}

	// The manifest is trusted but file names never escape the audio dir.
	path := filepath.Join(s.AudioDir, filepath.Base(file))
	log.Debug("serving audio: syllable=%q, file=%s", syllable, path)
	http.ServeFile(w, r, path)
}

func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if s.Synth == nil || s.SynthPool == nil {
		handleError(w, r, errors.NewBadRequestError("speech synthesis is not configured"))
		return
	}

	job := &worker.SynthesizeJob{
		Catalog:       s.Catalog,
		Index:         s.Index,
		Synth:         s.Synth,
		AudioDir:      s.AudioDir,
		ManifestPath:  s.ManifestPath,
		MaxConcurrent: s.MaxConcurrentSynth,
	}
	s.SynthPool.Submit(job)

	log.Info("synthesis job queued")
	respondJSON(w, r, http.StatusAccepted, map[string]any{
		"queued":     true,
		"queue_size": s.SynthPool.QueueSize(),
	})
}

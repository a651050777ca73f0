package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/noamlvn/nikudquiz/internal/api"
	"github.com/noamlvn/nikudquiz/internal/audio"
	"github.com/noamlvn/nikudquiz/internal/config"
	"github.com/noamlvn/nikudquiz/internal/db"
	"github.com/noamlvn/nikudquiz/internal/hebrew"
	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/services"
	"github.com/noamlvn/nikudquiz/internal/tts"
	"github.com/noamlvn/nikudquiz/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("NikudQuiz Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("manifest_path=%s", cfg.ManifestPath)
	log.Debug("audio_dir=%s", cfg.AudioDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("option_count=%d", cfg.OptionCount)
	log.Debug("round_cooldown=%s", cfg.RoundCooldown)
	log.Debug("tts_endpoint=%s", cfg.TTSEndpoint)
	log.Debug("synth_worker_count=%d", cfg.SynthWorkerCount)
	log.Debug("max_concurrent_synth=%d", cfg.MaxConcurrentSynth)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Load the audio manifest. A missing manifest is not fatal for the
	// process: the server stays up so synthesis can be triggered, but every
	// quiz-start affordance is disabled until a restart with a manifest.
	index, indexErr := audio.LoadIndex(cfg.ManifestPath)
	if indexErr != nil {
		log.Warn("audio manifest unavailable, quiz disabled: %v", indexErr)
		index = nil
	}

	catalog := hebrew.Default()

	// Initialize worker pool for background synthesis
	synthPool := worker.NewPool(cfg.SynthWorkerCount, cfg.SynthQueueSize)

	// Initialize services
	profileService := services.NewProfileService(database)
	quizService := services.NewQuizService(database, index, indexErr, catalog, cfg.OptionCount, cfg.RoundCooldown)

	srv := &api.Server{
		ProfileService:     profileService,
		QuizService:        quizService,
		HistoryDB:          database,
		Catalog:            catalog,
		Index:              index,
		AudioDir:           cfg.AudioDir,
		ManifestPath:       cfg.ManifestPath,
		SynthPool:          synthPool,
		Synth:              tts.New(cfg.TTSEndpoint, cfg.TTSVoice, cfg.TTSLanguage),
		MaxConcurrentSynth: cfg.MaxConcurrentSynth,
	}

	ctx, cancel := context.WithCancel(context.Background())
	synthPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping worker pool")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	synthPool.Stop()

	log.Info("===========================================")
	log.Info("NikudQuiz Server Stopped")
	log.Info("===========================================")
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	ManifestPath       string
	AudioDir           string
	LogLevel           string
	OptionCount        int
	RoundCooldown      time.Duration
	TTSEndpoint        string
	TTSVoice           string
	TTSLanguage        string
	SynthWorkerCount   int
	SynthQueueSize     int
	MaxConcurrentSynth int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:nikudquiz.db"),
		ManifestPath:       envOr("MANIFEST_PATH", "audio/manifest.json"),
		AudioDir:           envOr("AUDIO_DIR", "audio"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		OptionCount:        envIntOr("OPTION_COUNT", 4),
		RoundCooldown:      envDurOr("ROUND_COOLDOWN", 2*time.Second),
		TTSEndpoint:        envOr("TTS_ENDPOINT", "http://localhost:5002/api/tts"),
		TTSVoice:           envOr("TTS_VOICE", "he-IL-standard"),
		TTSLanguage:        envOr("TTS_LANGUAGE", "he"),
		SynthWorkerCount:   envIntOr("SYNTH_WORKER_COUNT", 1),
		SynthQueueSize:     envIntOr("SYNTH_QUEUE_SIZE", 8),
		MaxConcurrentSynth: envIntOr("MAX_CONCURRENT_SYNTH", 4),
	}
}

// Validate checks that the loaded configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ManifestPath == "" {
		return fmt.Errorf("MANIFEST_PATH cannot be empty")
	}
	if c.OptionCount < 2 {
		return fmt.Errorf("OPTION_COUNT must be at least 2, got %d", c.OptionCount)
	}
	if c.RoundCooldown < 0 {
		return fmt.Errorf("ROUND_COOLDOWN cannot be negative")
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}

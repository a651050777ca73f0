package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noamlvn/nikudquiz/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:nikudquiz.db", cfg.DBPath)
	assert.Equal(t, 4, cfg.OptionCount)
	assert.Equal(t, 2*time.Second, cfg.RoundCooldown)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("OPTION_COUNT", "6")
	t.Setenv("ROUND_COOLDOWN", "2500ms")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 6, cfg.OptionCount)
	assert.Equal(t, 2500*time.Millisecond, cfg.RoundCooldown)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("OPTION_COUNT", "many")
	t.Setenv("ROUND_COOLDOWN", "soon")

	cfg := config.Load()

	assert.Equal(t, 4, cfg.OptionCount)
	assert.Equal(t, 2*time.Second, cfg.RoundCooldown)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := config.Load()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR")
}

func TestValidate_OptionCountTooSmall(t *testing.T) {
	cfg := config.Load()
	cfg.OptionCount = 1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPTION_COUNT")
}

func TestValidate_NegativeCooldown(t *testing.T) {
	cfg := config.Load()
	cfg.RoundCooldown = -time.Second

	assert.Error(t, cfg.Validate())
}

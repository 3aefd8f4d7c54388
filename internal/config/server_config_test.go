package config_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lyralabs/watermark-service/internal/config"
)

func TestDefaultServiceConfigFromEnvDefaults(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()

	assert.NotEmpty(t, cfg.Echo.ListenAddress)
	assert.Equal(t, 16*1024*1024, cfg.Watermark.MaxContentBytes)
	assert.Equal(t, 4.0, cfg.Watermark.TextZThreshold)
	assert.Equal(t, 0.04, cfg.Watermark.ImageRhoThreshold)
	assert.Equal(t, 0.08, cfg.Watermark.AudioRhoThreshold)
}

func TestSecretKeyFromEnv(t *testing.T) {
	t.Setenv("WATERMARK_SECRET_KEY", "deadbeef")

	cfg := config.DefaultServiceConfigFromEnv()
	assert.Equal(t, "deadbeef", cfg.Watermark.SecretKey)
}

func TestPreviousKeysAreSplitAndTrimmed(t *testing.T) {
	t.Setenv("WATERMARK_PREVIOUS_KEYS", "aaaa, bbbb ,,cccc")

	cfg := config.DefaultServiceConfigFromEnv()
	assert.Equal(t, []string{"aaaa", "bbbb", "cccc"}, cfg.Watermark.PreviousKeys)
}

func TestEmptyPreviousKeys(t *testing.T) {
	t.Setenv("WATERMARK_PREVIOUS_KEYS", "  ")

	cfg := config.DefaultServiceConfigFromEnv()
	assert.Nil(t, cfg.Watermark.PreviousKeys)
}

func TestLoggerLevelParsing(t *testing.T) {
	t.Setenv("LOGGER_LEVEL", "debug")
	assert.Equal(t, zerolog.DebugLevel, config.DefaultServiceConfigFromEnv().Logger.Level)

	t.Setenv("LOGGER_LEVEL", "not-a-level")
	assert.Equal(t, zerolog.InfoLevel, config.DefaultServiceConfigFromEnv().Logger.Level)
}

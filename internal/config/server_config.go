// Package config holds the process-wide service configuration, resolved
// once at startup from the environment. The deployment secret is the sole
// root of trust: it is carried as an opaque hex string, parsed into the
// keyring during server construction and never logged.
package config

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Server is the full service configuration tree.
type Server struct {
	Echo      EchoServer
	Logger    Logger
	Watermark Watermark
}

// EchoServer configures the HTTP listener.
type EchoServer struct {
	ListenAddress                  string
	HideInternalServerErrorDetails bool
}

// Logger configures the process zerolog instance.
type Logger struct {
	Level              zerolog.Level
	PrettyPrintConsole bool
}

// Watermark configures the codec core. SecretKey and PreviousKeys are
// hex-encoded; PreviousKeys is ordered newest first so rotated-out keys can
// still verify previously issued watermarks.
type Watermark struct {
	SecretKey         string
	PreviousKeys      []string
	MaxContentBytes   int
	TextZThreshold    float64
	ImageRhoThreshold float64
	AudioRhoThreshold float64
}

// DefaultServiceConfigFromEnv resolves the configuration from environment
// variables (an optional .env file is merged first), falling back to
// defaults for everything but the secret key.
func DefaultServiceConfigFromEnv() Server {
	// Missing .env is the normal production case.
	_ = gotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("SERVER_HIDE_INTERNAL_ERROR_DETAILS", true)
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_PRETTY_PRINT_CONSOLE", false)
	v.SetDefault("WATERMARK_SECRET_KEY", "")
	v.SetDefault("WATERMARK_PREVIOUS_KEYS", "")
	v.SetDefault("WATERMARK_MAX_CONTENT_BYTES", 16*1024*1024)
	v.SetDefault("WATERMARK_TEXT_Z_THRESHOLD", 4.0)
	v.SetDefault("WATERMARK_IMAGE_RHO_THRESHOLD", 0.04)
	v.SetDefault("WATERMARK_AUDIO_RHO_THRESHOLD", 0.08)

	level, err := zerolog.ParseLevel(v.GetString("LOGGER_LEVEL"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	return Server{
		Echo: EchoServer{
			ListenAddress:                  v.GetString("SERVER_ADDRESS"),
			HideInternalServerErrorDetails: v.GetBool("SERVER_HIDE_INTERNAL_ERROR_DETAILS"),
		},
		Logger: Logger{
			Level:              level,
			PrettyPrintConsole: v.GetBool("LOGGER_PRETTY_PRINT_CONSOLE"),
		},
		Watermark: Watermark{
			SecretKey:         v.GetString("WATERMARK_SECRET_KEY"),
			PreviousKeys:      splitKeys(v.GetString("WATERMARK_PREVIOUS_KEYS")),
			MaxContentBytes:   v.GetInt("WATERMARK_MAX_CONTENT_BYTES"),
			TextZThreshold:    v.GetFloat64("WATERMARK_TEXT_Z_THRESHOLD"),
			ImageRhoThreshold: v.GetFloat64("WATERMARK_IMAGE_RHO_THRESHOLD"),
			AudioRhoThreshold: v.GetFloat64("WATERMARK_AUDIO_RHO_THRESHOLD"),
		},
	}
}

func splitKeys(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	keys := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			keys = append(keys, trimmed)
		}
	}
	return keys
}

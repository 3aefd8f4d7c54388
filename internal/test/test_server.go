// Package test provides the shared server harness and fixtures for handler
// and command tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/api/router"
	"github.com/lyralabs/watermark-service/internal/config"
)

// Fixed key material for tests. Never use these outside a test binary.
const (
	TestSecretKey   = "8f7d0a52c4b0e6a1d93f5c7b2e84a6d0f1b3c5d7e9a0b2c4d6e8f0a1b3c5d7e9"
	TestPreviousKey = "3a9e1c5f7b2d4e6a8c0f1d3b5a7e9c2f4d6b8a0e1c3f5d7b9a2c4e6f8d0b1a3c"
)

// DefaultTestConfig returns the env-derived config with the fixed test keys
// applied.
func DefaultTestConfig() config.Server {
	cfg := config.DefaultServiceConfigFromEnv()
	cfg.Watermark.SecretKey = TestSecretKey
	cfg.Watermark.PreviousKeys = []string{TestPreviousKey}
	return cfg
}

// WithTestServer runs the closure against a fully routed server using the
// default test config.
func WithTestServer(t *testing.T, closure func(s *api.Server)) {
	t.Helper()
	WithTestServerConfigurable(t, DefaultTestConfig(), closure)
}

// WithTestServerConfigurable runs the closure against a fully routed server
// built from the given config.
func WithTestServerConfigurable(t *testing.T, cfg config.Server, closure func(s *api.Server)) {
	t.Helper()

	s, err := api.InitNewServer(cfg)
	require.NoError(t, err)

	router.Init(s)

	closure(s)
}

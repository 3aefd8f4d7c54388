package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/test"
	"github.com/lyralabs/watermark-service/internal/util/command"
)

func TestWithServer(t *testing.T) {
	ctx := context.Background()

	var testError = errors.New("test error")

	cfg := test.DefaultTestConfig()
	cfg.Logger.PrettyPrintConsole = false

	resultErr := command.WithServer(ctx, cfg, func(ctx context.Context, s *api.Server) error {
		require.True(t, s.Ready())
		require.NotNil(t, s.Watermark)
		require.NotNil(t, s.Provenance)

		return testError
	})

	assert.Equal(t, testError, resultErr)
}

func TestNewSubcommandGroupAddsChildren(t *testing.T) {
	group := command.NewSubcommandGroup("parent")
	assert.Equal(t, "parent", group.Use)
	assert.Empty(t, group.Commands())
}

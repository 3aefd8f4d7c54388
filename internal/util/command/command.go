// Package command holds the shared cobra plumbing of the cmd tree.
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/api/router"
	"github.com/lyralabs/watermark-service/internal/config"
)

// NewSubcommandGroup returns a group command that only dispatches to its
// subcommands and prints usage when invoked bare.
func NewSubcommandGroup(name string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: name,
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Failed to print help, error: %v\n", err)
				os.Exit(1)
			}
			os.Exit(0)
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer initializes logging, wires a fully routed server from config and
// runs the closure against it. The server is shut down before returning; the
// closure's error is passed through.
func WithServer(ctx context.Context, cfg config.Server, closure func(ctx context.Context, s *api.Server) error) error {
	zerolog.SetGlobalLevel(cfg.Logger.Level)
	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter())
	}

	s, err := api.InitNewServer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize server")
		return err
	}

	router.Init(s)

	defer func() {
		if err := s.Shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to shut down server")
		}
	}()

	return closure(ctx, s)
}

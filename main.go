package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lyralabs/watermark-service/cmd/probe"
	"github.com/lyralabs/watermark-service/cmd/server"
	"github.com/lyralabs/watermark-service/internal/config"
)

func main() {
	cfg := config.DefaultServiceConfigFromEnv()

	zerolog.SetGlobalLevel(cfg.Logger.Level)
	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter())
	}

	rootCmd := &cobra.Command{
		Use:   "watermark-service",
		Short: "Multi-modal watermark codec and forensic verifier",
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Failed to print help, error: %v\n", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.AddCommand(
		server.New(),
		probe.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Failed to execute command")
	}
}

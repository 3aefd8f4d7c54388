package probe

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lyralabs/watermark-service/internal/config"
)

func newLiveness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "liveness",
		Short: "Checks whether the server process accepts connections",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)

			cfg := config.DefaultServiceConfigFromEnv()
			if err := probeHealth(cfg, verbose); err != nil {
				fmt.Fprintf(os.Stderr, "Liveness probe failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Prints the health response body")

	return cmd
}

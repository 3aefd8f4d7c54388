package probe

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lyralabs/watermark-service/internal/config"
)

const probeTimeout = 5 * time.Second

// The server holds no database or registry, so readiness and liveness probe
// the same endpoint: a process that answers /health can serve traffic.
func newReadiness() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Checks whether the server is ready to serve requests",
		Run: func(cmd *cobra.Command, _ []string) {
			verbose, _ := cmd.Flags().GetBool(verboseFlag)

			cfg := config.DefaultServiceConfigFromEnv()
			if err := probeHealth(cfg, verbose); err != nil {
				fmt.Fprintf(os.Stderr, "Readiness probe failed: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolP(verboseFlag, "v", false, "Prints the health response body")

	return cmd
}

func probeHealth(cfg config.Server, verbose bool) error {
	addr := cfg.Echo.ListenAddress
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}

	client := &http.Client{Timeout: probeTimeout}
	resp, err := client.Get(fmt.Sprintf("http://%s/health", addr))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Println(string(body))
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

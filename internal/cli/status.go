package cli

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Shows the configured server URL and checks that its health endpoint answers.",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	serverURL := getServerURL()

	fmt.Fprintf(out, "Server:  %s\n", serverURL)

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(cmd.Context(), "GET", strings.TrimRight(serverURL, "/")+"/health", nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", err)
		return nil
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: closing response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode == http.StatusOK {
		fmt.Fprintln(out, "Status:  ✓ connected")
	} else {
		fmt.Fprintf(out, "Status:  ✗ unexpected response (%d)\n", resp.StatusCode)
	}

	return nil
}

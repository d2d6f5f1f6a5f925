package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func newRemoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remote [url]",
		Short: "Show or set the server URL",
		Long:  "Show the server URL the CLI talks to, or store a new one in ~/.config/pf/config.yaml. PF_SERVER_URL overrides the stored value.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRemote,
	}
}

func runRemote(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		fmt.Fprintf(out, "Server: %s\n", getServerURL())
		return nil
	}

	raw := strings.TrimRight(args[0], "/")
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q (must be http or https)", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.ServerURL = raw
	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "Server: %s\n", raw)
	return nil
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/marsadembi/portfolio/internal/config"
	"github.com/marsadembi/portfolio/internal/logging"
	"github.com/marsadembi/portfolio/internal/web"
)

func newServeCmd() *cobra.Command {
	var (
		port    int
		envFile string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		Long:  "Start the portfolio site and its JSON API. Configuration comes from PF_* environment variables and an optional .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, envFile)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "port to listen on (default: PF_PORT or 8080)")
	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env when present)")

	return cmd
}

func runServe(ctx context.Context, port int, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if port != 0 {
		cfg.Port = port
	}

	logging.Setup(cfg.DevMode)

	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	srv, err := web.NewServer(database, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting portfolio on http://localhost:%d\n", cfg.Port)
	return srv.ListenAndServe(ctx, cfg.Port)
}

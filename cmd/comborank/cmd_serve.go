package main

import (
	"fmt"
	"log/slog"

	"github.com/spboyer/comborank/internal/cache"
	"github.com/spboyer/comborank/internal/orchestration"
	"github.com/spboyer/comborank/internal/webapi"
	"github.com/spboyer/comborank/internal/webserver"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var port int
	var resultsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP ranking API",
		Long: `Start an HTTP server exposing the ranking pipeline as a JSON API.

The server binds to 127.0.0.1 only. Endpoints:
  GET  /api/health      Server status and version
  GET  /api/defaults    Default run configuration
  POST /api/rank        Rank variants against rounds
  POST /api/stats       Describe variants and rounds
  GET  /api/runs        List stored ranking runs
  GET  /api/runs/{id}   Get one stored run

Runs are stored as JSON files in the results directory. The server stops
gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pc, err := loadProjectConfig(cmd)
			if err != nil {
				return err
			}

			cfg := webserver.Config{
				Port:           pc.Server.Port,
				ResultsDir:     pc.Server.ResultsDir,
				AllowedOrigins: pc.Server.AllowedOrigins,
				Logger:         slog.Default(),
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("results-dir") {
				cfg.ResultsDir = resultsDir
			}

			var runnerOpts []orchestration.RunnerOption
			if pc.Cache.Enabled != nil && *pc.Cache.Enabled {
				runnerOpts = append(runnerOpts, orchestration.WithCache(cache.New(pc.Cache.Dir)))
			}
			cfg.Runner = orchestration.NewRunner(runnerOpts...)

			webapi.Version = version
			srv, err := webserver.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s\n", srv.Addr()) //nolint:errcheck
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 3000, "Port to listen on")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "results/", "Directory where ranking runs are stored")

	return cmd
}

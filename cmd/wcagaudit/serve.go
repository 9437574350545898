package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/wcagaudit/internal/config"
	wclog "github.com/nao1215/wcagaudit/internal/log"
	"github.com/nao1215/wcagaudit/internal/pipeline"
	"github.com/nao1215/wcagaudit/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report and saved-set HTTP API",
		Long: `Serve starts an HTTP API for report generation and saved URL sets.

Endpoints:
  GET    /healthz
  POST   /api/reports            generate a report
  GET    /api/sets               list saved sets (passwords removed)
  POST   /api/sets               save a set
  DELETE /api/sets/{id}          delete a set
  GET    /api/sets/{id}/targets  load a set with fresh target ids

Only one report is generated at a time; concurrent requests get 409.

Examples:
  wcagaudit serve
  wcagaudit serve --listen 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress,
		"Address to listen on")
	cmd.Flags().StringP("response-file", "r", "",
		"Answer every generation with a saved Gemini response")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.ListenAddress, err = cmd.Flags().GetString("listen"); err != nil {
		return err
	}
	if cfg.ResponseFile, err = cmd.Flags().GetString("response-file"); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := wclog.NewSecureJSONLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, slots, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer slots.Close()

	gen, err := newGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	srv := server.New(pipeline.NewRunner(gen, logger), store,
		server.WithLogger(logger),
		server.WithRequestOptions(requestOptions(cfg)...),
	)

	return srv.ListenAndServe(ctx, cfg.ListenAddress)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonnyWalker81/problemjson/internal/config"
	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  `Start the HTTP API server and listen for requests until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port)
		},
	}

	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")

	return serveCmd
}

func runServe(ctx context.Context, port string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	log := logger.New(logger.Config{
		Level:     logger.ParseLevel(cfg.Log.Level),
		Format:    cfg.Log.Format,
		Backend:   cfg.Log.Backend,
		AddSource: cfg.Log.AddSource,
	})
	logger.SetDefault(log)

	log.Info("starting problemjson API server",
		logger.String("env", cfg.Server.Env),
		logger.String("log_backend", cfg.Log.Backend),
	)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx, cfg, log)
}

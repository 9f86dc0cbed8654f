package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/JonnyWalker81/problemjson/internal/config"
	"github.com/JonnyWalker81/problemjson/internal/logger"
	"github.com/JonnyWalker81/problemjson/internal/metrics"
)

// Run serves the API until ctx is canceled, then shuts down gracefully
// within cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	reg := metrics.NewRegistry("problemjson", true)
	router, cleanup := NewRouter(cfg, log, reg)
	defer cleanup()

	appServer := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errChan := make(chan error, 1)
	go func(s *http.Server) {
		errChan <- s.ListenAndServe()
	}(appServer)

	log.Info("API server is listening",
		logger.String("addr", appServer.Addr),
		logger.String("env", cfg.Server.Env),
	)

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info("API server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := appServer.Shutdown(shutdownCtx); err != nil {
		_ = appServer.Close()
		return fmt.Errorf("could not stop the API server gracefully: %w", err)
	}

	log.Info("API server has shut down")
	return nil
}

// ABOUTME: CLI command for running the HTTP API.
// ABOUTME: Serves until SIGINT/SIGTERM, then drains in-flight requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/smartfit/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the SmartFit HTTP API.

The listen address comes from --addr, then HTTP_ADDR, then :8000.
Allowed CORS origins come from CORS_ORIGINS (comma-separated).

ENDPOINTS:

  GET    /health
  GET    /exercises[?body_part=]
  POST   /user-profiles
  GET    /user-profiles/:user_id
  PUT    /user-profiles/:user_id
  POST   /event-logs
  GET    /event-logs?user_id=&limit=
  POST   /user-metrics
  GET    /user-metrics?user_id=&limit=
  POST   /workouts
  GET    /workouts[?limit=]
  GET    /workouts/:id
  DELETE /workouts/:id
  POST   /recommendations
  GET    /recommendations/schema`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if serveAddr != "" {
			addr = serveAddr
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handler := api.NewHandler(store, api.Options{
			CORSOrigins: cfg.CORSOrigins,
			Logger:      logger,
		})
		return runServer(ctx, ln, handler, logger)
	},
}

// runServer serves on ln until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, ln net.Listener, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: HTTP_ADDR or :8000)")
	rootCmd.AddCommand(serveCmd)
}

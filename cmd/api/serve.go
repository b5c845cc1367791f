package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/talentrail/internal/handler"
)

func newServeCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Start the HTTP server on $PORT and serve the API under /api/v1 until
SIGINT or SIGTERM, then drain in-flight requests before exiting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, migrateFirst)
		},
	}
	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func runServe(ctx context.Context, migrateFirst bool) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if migrateFirst {
		if err := migrateUp(ctx, a, nil); err != nil {
			return err
		}
	}

	svc := a.buildServices(ctx)
	defer svc.closeFn()

	server := handler.NewServer(handler.Services{
		Guides:     svc.guides,
		Skills:     svc.skills,
		Trips:      svc.trips,
		Candidates: svc.candidates,
		Auth:       svc.auth,
	}, a.logger)

	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	// WriteTimeout leaves room for two provider calls on enriched reads.
	srv := &http.Server{
		Addr: ":" + a.cfg.Port,
		Handler: handler.NewRouter(server, handler.RouterOptions{
			Tokens:       svc.tokens,
			CORSOrigins:  a.cfg.CORSOrigins,
			MaxBodyBytes: a.cfg.MaxBodyBytes,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + 2*a.cfg.HTTPClientTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	a.logger.Info("server stopped")
	return nil
}

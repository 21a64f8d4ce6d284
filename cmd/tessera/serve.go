package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessera-app/tessera/server"
	"github.com/tessera-app/tessera/services"
	"github.com/tessera-app/tessera/shared/db"
	"github.com/tessera-app/tessera/store"
	"github.com/tessera-app/tessera/tracing"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the Tessera HTTP API server.

Required configuration:
  - PostgreSQL database (TESSERA_POSTGRES_URL)

Optional:
  - Moderation secret (TESSERA_ADMIN_SECRET)
  - Tracing (TESSERA_TRACING_ENABLED)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	slog.Info("starting tessera", "host", cfg.Server.Host, "port", cfg.Server.Port)

	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer("tessera")
		if err != nil {
			slog.Warn("failed to initialize tracing", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					slog.Error("tracer shutdown error", "error", err)
				}
			}()
			slog.Info("tracing initialized")
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	slog.Info("connecting to database")
	pool, err := db.Connect(ctx, db.Config{URL: cfg.Database.URL, Timezone: "UTC"})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		return err
	}
	defer pool.Close()
	slog.Info("database connected")

	s := store.New(pool)
	promptSvc := services.NewPromptService(s)
	modSvc := services.NewModerationService(s)

	srv := server.NewServer(cfg, s, promptSvc, modSvc)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "host", cfg.Server.Host, "port", cfg.Server.Port)
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("server error", "error", err)
		return err
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
		slog.Info("server stopped")
	}
	return nil
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"docker-demo/internal/config"
	"docker-demo/internal/infrastructure/http"
	"docker-demo/internal/infrastructure/http/handlers"
	"docker-demo/internal/infrastructure/logger"
	"docker-demo/internal/infrastructure/metrics"
	"docker-demo/internal/usecase"
)

func newServeCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *configFile)
		},
	}

	cmd.Flags().IntP("port", "p", 8000, "Port to listen on")
	cmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func runServe(cmd *cobra.Command, configFile string) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logger.NewSlogLogger(cfg.LogLevel)
	logger.Info("Starting docker-demo service",
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.Environment),
		slog.String("hostname", cfg.Hostname),
	)

	metricsCollector := metrics.NewPrometheusMetrics(metrics.Options{
		RuntimeCollectors: cfg.Metrics.RuntimeCollectors,
	})

	statusService := usecase.NewStatusService(cfg, logger)
	statusHandler := handlers.NewStatusHandler(statusService, logger)

	srv := http.NewServer(cfg, statusHandler, metricsCollector, logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
		return fmt.Errorf("could not gracefully shutdown the server: %w", err)
	}

	logger.Info("Server exited")
	return nil
}

package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docker-demo/internal/config"
	"docker-demo/internal/infrastructure/http/handlers"
	"docker-demo/internal/infrastructure/logger"
	"docker-demo/internal/infrastructure/metrics"
	"docker-demo/internal/usecase"
)

type Server struct {
	cfg           *config.Config
	router        *chi.Mux
	server        *http.Server
	statusHandler *handlers.StatusHandler
	metrics       metrics.Exporter
	logger        logger.Logger
}

func NewServer(
	cfg *config.Config,
	statusHandler *handlers.StatusHandler,
	metrics metrics.Exporter,
	logger logger.Logger,
) *Server {
	s := &Server{
		cfg:           cfg,
		statusHandler: statusHandler,
		metrics:       metrics,
		logger:        logger,
	}

	s.setupRouter()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(s.logger))
	// Recoverer sits outside the metrics middleware so a panic is counted first.
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware(s.metrics, s.cfg.Metrics.Path))
	if s.cfg.Server.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}

	r.NotFound(s.statusHandler.NotFound)
	r.MethodNotAllowed(s.statusHandler.MethodNotAllowed)

	r.Get("/", s.statusHandler.Index)
	r.Get("/api", s.statusHandler.API)
	r.Get("/health", s.statusHandler.Health)
	r.Get("/info", s.statusHandler.Info)
	r.Get(usecase.DocsPath, s.statusHandler.Docs)
	r.Get("/redoc", s.statusHandler.Redoc)
	r.Get(usecase.OpenAPIPath, s.statusHandler.OpenAPI)

	if s.metrics != nil {
		r.Get(s.cfg.Metrics.Path, s.metrics.Handler().ServeHTTP)
	}

	s.router = r
}

func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "port", s.cfg.Server.Port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve runs the server on an existing listener.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("HTTP server listening", "address", l.Addr().String())
	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) Router() *chi.Mux {
	return s.router
}

package http

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docker-demo/internal/config"
	"docker-demo/internal/infrastructure/http/handlers"
	"docker-demo/internal/infrastructure/metrics"
	"docker-demo/internal/usecase"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           8000,
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			RequestTimeout: 5 * time.Second,
		},
		App: config.AppConfig{
			Name:        "FastAPI Docker Demo",
			Version:     "1.0.0",
			ServiceName: "fastapi-demo",
			Message:     "Hello World from Docker!",
		},
		Metrics:     config.MetricsConfig{Path: "/metrics"},
		Hostname:    "test-host",
		Environment: "test",
		LogLevel:    "error",
	}
}

func newTestServer(t *testing.T, m metrics.Exporter) *Server {
	t.Helper()

	mockLogger := new(MockLogger)
	mockLogger.On("Debug", mock.Anything, mock.Anything).Return()
	mockLogger.On("Info", mock.Anything, mock.Anything).Return()
	mockLogger.On("Error", mock.Anything, mock.Anything).Return()

	cfg := newTestConfig()
	service := usecase.NewStatusService(cfg, mockLogger)
	return NewServer(cfg, handlers.NewStatusHandler(service, mockLogger), m, mockLogger)
}

func TestServer_Routes(t *testing.T) {
	m := metrics.NewPrometheusMetrics(metrics.Options{})
	server := newTestServer(t, m)

	tests := []struct {
		name        string
		method      string
		path        string
		status      int
		contentType string
	}{
		{name: "status page", method: http.MethodGet, path: "/", status: http.StatusOK, contentType: "text/html; charset=utf-8"},
		{name: "api", method: http.MethodGet, path: "/api", status: http.StatusOK, contentType: "application/json"},
		{name: "health", method: http.MethodGet, path: "/health", status: http.StatusOK, contentType: "application/json"},
		{name: "info", method: http.MethodGet, path: "/info", status: http.StatusOK, contentType: "application/json"},
		{name: "api docs", method: http.MethodGet, path: "/docs", status: http.StatusOK, contentType: "text/html; charset=utf-8"},
		{name: "openapi document", method: http.MethodGet, path: "/openapi.json", status: http.StatusOK, contentType: "application/json"},
		{name: "redoc redirect", method: http.MethodGet, path: "/redoc", status: http.StatusMovedPermanently, contentType: "text/html; charset=utf-8"},
		{name: "unknown path", method: http.MethodGet, path: "/does-not-exist", status: http.StatusNotFound, contentType: "application/json"},
		{name: "wrong method", method: http.MethodPost, path: "/health", status: http.StatusMethodNotAllowed, contentType: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			server.Router().ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}

	assert.Equal(t, float64(1), requestCount(t, m, "GET", "/docs", "200"))
	assert.Equal(t, float64(1), requestCount(t, m, "GET", "/openapi.json", "200"))
	assert.Equal(t, float64(1), requestCount(t, m, "GET", "/does-not-exist", "404"))
	assert.Equal(t, float64(1), requestCount(t, m, "POST", "/health", "405"))
	assert.Equal(t, uint64(len(tests)), durationCount(t, m))
}

func TestServer_MetricsEndpointNotInstrumented(t *testing.T) {
	m := metrics.NewPrometheusMetrics(metrics.Options{})
	server := newTestServer(t, m)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, float64(0), requestCount(t, m, "GET", "/metrics", "200"))
	assert.Equal(t, uint64(0), durationCount(t, m))
}

func TestServer_WithoutMetrics(t *testing.T) {
	server := newTestServer(t, nil)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	server := newTestServer(t, metrics.NewPrometheusMetrics(metrics.Options{}))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Serve(listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.Shutdown(ctx))
	assert.NoError(t, <-errCh)
}

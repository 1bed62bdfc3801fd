package usecase

import (
	"runtime"
	"strings"
	"time"

	"docker-demo/internal/config"
	"docker-demo/internal/domain"
	"docker-demo/internal/infrastructure/logger"
)

const (
	defaultMetricsPath = "/metrics"
	DocsPath           = "/docs"
	OpenAPIPath        = "/openapi.json"
)

var stringSchema = domain.OpenAPISchema{Type: "string"}

// Routes lists the documented routes in display order.
var Routes = []domain.Endpoint{
	{Method: "GET", Path: "/", Description: "Status page", ContentType: "text/html"},
	{
		Method: "GET", Path: "/api", Description: "JSON API endpoint", ContentType: "application/json",
		Schema: &domain.OpenAPISchema{
			Type:       "object",
			Properties: map[string]domain.OpenAPISchema{"message": stringSchema, "timestamp": stringSchema, "hostname": stringSchema},
			Required:   []string{"message", "timestamp", "hostname"},
		},
	},
	{
		Method: "GET", Path: "/health", Description: "Health check endpoint", ContentType: "application/json",
		Schema: &domain.OpenAPISchema{
			Type:       "object",
			Properties: map[string]domain.OpenAPISchema{"status": stringSchema, "service": stringSchema},
			Required:   []string{"status", "service"},
		},
	},
	{
		Method: "GET", Path: "/info", Description: "Application information", ContentType: "application/json",
		Schema: &domain.OpenAPISchema{
			Type: "object",
			Properties: map[string]domain.OpenAPISchema{
				"app": stringSchema, "version": stringSchema, "python_version": stringSchema,
				"go_version": stringSchema, "environment": stringSchema,
			},
			Required: []string{"app", "version", "python_version", "go_version", "environment"},
		},
	},
	{Method: "GET", Path: defaultMetricsPath, Description: "Prometheus metrics", ContentType: "text/plain"},
}

var docsEndpoint = domain.Endpoint{Method: "GET", Path: DocsPath, Description: "Interactive API documentation", ContentType: "text/html"}

type StatusService struct {
	cfg    *config.Config
	logger logger.Logger
	now    func() time.Time
}

func NewStatusService(cfg *config.Config, logger logger.Logger) *StatusService {
	return &StatusService{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the time source, for tests.
func (s *StatusService) WithClock(now func() time.Time) *StatusService {
	s.now = now
	return s
}

func (s *StatusService) timestamp() string {
	return s.now().Format(time.RFC3339Nano)
}

// routes returns a copy of Routes with the configured metrics path applied.
func (s *StatusService) routes() []domain.Endpoint {
	routes := make([]domain.Endpoint, len(Routes))
	copy(routes, Routes)
	for i := range routes {
		if routes[i].Path == defaultMetricsPath && s.cfg.Metrics.Path != "" {
			routes[i].Path = s.cfg.Metrics.Path
		}
	}
	return routes
}

func (s *StatusService) StatusPage() domain.StatusPage {
	endpoints := make([]domain.Endpoint, 0, len(Routes))
	for _, route := range s.routes() {
		if route.Path == "/" {
			continue
		}
		endpoints = append(endpoints, route)
	}
	endpoints = append(endpoints, docsEndpoint)

	s.logger.Debug("Building status page", "hostname", s.cfg.Hostname)

	return domain.StatusPage{
		AppName:        s.cfg.App.Name,
		Version:        s.cfg.App.Version,
		Hostname:       s.cfg.Hostname,
		Timestamp:      s.timestamp(),
		Environment:    s.cfg.Environment,
		RuntimeVersion: runtime.Version(),
		Endpoints:      endpoints,
	}
}

func (s *StatusService) API() domain.APIResponse {
	return domain.APIResponse{
		Message:   s.cfg.App.Message,
		Timestamp: s.timestamp(),
		Hostname:  s.cfg.Hostname,
	}
}

func (s *StatusService) Health() domain.HealthResponse {
	return domain.HealthResponse{
		Status:  domain.HealthStatusHealthy,
		Service: s.cfg.App.ServiceName,
	}
}

func (s *StatusService) Info() domain.InfoResponse {
	return domain.InfoResponse{
		App:           s.cfg.App.Name,
		Version:       s.cfg.App.Version,
		PythonVersion: runtime.Version(),
		GoVersion:     runtime.Version(),
		Environment:   s.cfg.Environment,
	}
}

func (s *StatusService) DocsPage() domain.DocsPage {
	return domain.DocsPage{
		AppName:   s.cfg.App.Name,
		Version:   s.cfg.App.Version,
		SpecURL:   OpenAPIPath,
		Endpoints: s.routes(),
	}
}

// OpenAPI describes the routes in Routes. The docs routes are not listed.
func (s *StatusService) OpenAPI() domain.OpenAPIDocument {
	doc := domain.OpenAPIDocument{
		OpenAPI: domain.OpenAPIVersion,
		Info: domain.OpenAPIInfo{
			Title:   s.cfg.App.Name,
			Version: s.cfg.App.Version,
		},
		Paths: make(map[string]domain.OpenAPIPathItem),
	}

	for _, route := range s.routes() {
		schema := domain.OpenAPISchema{Type: "string"}
		if route.Schema != nil {
			schema = *route.Schema
		}

		item, ok := doc.Paths[route.Path]
		if !ok {
			item = make(domain.OpenAPIPathItem)
			doc.Paths[route.Path] = item
		}
		item[strings.ToLower(route.Method)] = domain.OpenAPIOperation{
			Summary:     route.Description,
			OperationID: operationID(route),
			Responses: map[string]domain.OpenAPIResponse{
				"200": {
					Description: "Successful Response",
					Content: map[string]domain.OpenAPIMediaType{
						route.ContentType: {Schema: schema},
					},
				},
			},
		}
	}

	return doc
}

// operationID turns "GET /api" into "get_api" and "GET /" into "get_root".
func operationID(route domain.Endpoint) string {
	name := strings.Trim(route.Path, "/")
	if name == "" {
		name = "root"
	}
	name = strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(name)
	return strings.ToLower(route.Method) + "_" + name
}

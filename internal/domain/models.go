package domain

type APIResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Hostname  string `json:"hostname"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

const HealthStatusHealthy = "healthy"

type InfoResponse struct {
	App     string `json:"app"`
	Version string `json:"version"`
	// PythonVersion is kept for clients that still read the legacy key.
	PythonVersion string `json:"python_version"`
	// GoVersion carries the same runtime.Version() value as PythonVersion.
	GoVersion   string `json:"go_version"`
	Environment string `json:"environment"`
}

type Endpoint struct {
	Method      string
	Path        string
	Description string
	ContentType string
	// Schema describes the JSON body; nil for non-JSON responses.
	Schema *OpenAPISchema
}

type StatusPage struct {
	AppName        string
	Version        string
	Hostname       string
	Timestamp      string
	Environment    string
	RuntimeVersion string
	Endpoints      []Endpoint
}

package domain

const OpenAPIVersion = "3.1.0"

type OpenAPIDocument struct {
	OpenAPI string                     `json:"openapi"`
	Info    OpenAPIInfo                `json:"info"`
	Paths   map[string]OpenAPIPathItem `json:"paths"`
}

type OpenAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// OpenAPIPathItem is keyed by lower-case HTTP method.
type OpenAPIPathItem map[string]OpenAPIOperation

type OpenAPIOperation struct {
	Summary     string                     `json:"summary"`
	OperationID string                     `json:"operationId"`
	Responses   map[string]OpenAPIResponse `json:"responses"`
}

type OpenAPIResponse struct {
	Description string                      `json:"description"`
	Content     map[string]OpenAPIMediaType `json:"content"`
}

type OpenAPIMediaType struct {
	Schema OpenAPISchema `json:"schema"`
}

type OpenAPISchema struct {
	Type       string                   `json:"type"`
	Properties map[string]OpenAPISchema `json:"properties,omitempty"`
	Required   []string                 `json:"required,omitempty"`
}

type DocsPage struct {
	AppName   string
	Version   string
	SpecURL   string
	Endpoints []Endpoint
}

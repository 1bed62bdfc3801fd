package metrics

import "net/http"

type Metrics interface {
	IncHTTPRequests(method, path string, statusCode int)
	ObserveHTTPDuration(duration float64)
	IncActiveRequests()
	DecActiveRequests()
}

// Exporter is a Metrics whose state can be scraped over HTTP.
type Exporter interface {
	Metrics
	Handler() http.Handler
}

package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"docker-demo/internal/domain"
	"docker-demo/internal/infrastructure/logger"
	"docker-demo/internal/usecase"
)

//go:embed templates/*.html
var templatesFS embed.FS

var (
	statusTemplate = template.Must(template.ParseFS(templatesFS, "templates/status.html"))
	docsTemplate   = template.Must(template.ParseFS(templatesFS, "templates/docs.html"))
)

type StatusHandler struct {
	service  *usecase.StatusService
	logger   logger.Logger
	tmpl     *template.Template
	docsTmpl *template.Template
}

func NewStatusHandler(service *usecase.StatusService, logger logger.Logger) *StatusHandler {
	return &StatusHandler{
		service:  service,
		logger:   logger,
		tmpl:     statusTemplate,
		docsTmpl: docsTemplate,
	}
}

func (h *StatusHandler) renderHTML(w http.ResponseWriter, tmpl *template.Template, page string, data any) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		h.logger.Error("Failed to render "+page, slog.Any("error", err))
		respondError(w, http.StatusInternalServerError, domain.ErrInternal)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GET /
func (h *StatusHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, h.tmpl, "status page", h.service.StatusPage())
}

// GET /docs
func (h *StatusHandler) Docs(w http.ResponseWriter, r *http.Request) {
	h.renderHTML(w, h.docsTmpl, "docs page", h.service.DocsPage())
}

// GET /redoc
func (h *StatusHandler) Redoc(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, usecase.DocsPath, http.StatusMovedPermanently)
}

// GET /openapi.json
func (h *StatusHandler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.OpenAPI())
}

// GET /api
func (h *StatusHandler) API(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.API())
}

// GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Health())
}

// GET /info
func (h *StatusHandler) Info(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Info())
}

func (h *StatusHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Route not found", slog.String("path", r.URL.Path))
	respondError(w, http.StatusNotFound, domain.ErrNotFound)
}

func (h *StatusHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("Method not allowed", slog.String("method", r.Method), slog.String("path", r.URL.Path))
	respondError(w, http.StatusMethodNotAllowed, domain.ErrMethodNotAllowed)
}

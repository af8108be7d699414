// Package httphandler implements the JSON API driving adapter.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// maxSelectionLimit caps the limit query parameter of ListSelections.
const maxSelectionLimit = 100

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	searchSvc    *application.SearchService
	selectionSvc *application.SelectionService
	healthSvc    *application.HealthService
	logger       *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	searchSvc *application.SearchService,
	selectionSvc *application.SelectionService,
	healthSvc *application.HealthService,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		searchSvc:    searchSvc,
		selectionSvc: selectionSvc,
		healthSvc:    healthSvc,
		logger:       logger,
	}
}

// RegisterAPIRoutes registers all JSON API routes on the provided mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/repos", h.SearchRepos)
	mux.HandleFunc("GET /api/v1/selections", h.ListSelections)
	mux.HandleFunc("GET /api/v1/selections/{owner}/{repo}", h.GetSelectionCount)
	mux.HandleFunc("GET /api/v1/health", h.Health)
}

// ApplyMiddleware wraps handler with recovery, security headers and request
// logging. It serves both the JSON API and the web GUI.
func ApplyMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, handler)
	wrapped = securityHeaders(wrapped)
	wrapped = loggingMiddleware(logger, wrapped)
	return wrapped
}

// SearchRepos returns one page of recently created repositories sorted by
// stars. Query parameters: window (1w, 2w, 1m or a label; default 1m) and
// page (default 1).
func (h *Handler) SearchRepos(w http.ResponseWriter, r *http.Request) {
	window := model.DefaultTimeWindow
	if v := r.URL.Query().Get("window"); v != "" {
		parsed, err := model.ParseTimeWindow(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid window: expected 1w, 2w or 1m")
			return
		}
		window = parsed
	}

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid page: expected a positive integer")
			return
		}
		page = parsed
	}

	result, err := h.searchSvc.Page(r.Context(), window, page)
	if err != nil {
		if errors.Is(err, application.ErrInvalidPage) || errors.Is(err, model.ErrUnknownTimeWindow) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to search repositories", "window", window, "page", page, "error", err)
		writeError(w, http.StatusBadGateway, "upstream search failed")
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(result))
}

// ListSelections returns the most recent selections, newest first.
func (h *Handler) ListSelections(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxSelectionLimit {
			writeError(w, http.StatusBadRequest, "invalid limit: expected 1-100")
			return
		}
		limit = parsed
	}

	sels, err := h.selectionSvc.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list selections", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]SelectionResponse, 0, len(sels))
	for _, s := range sels {
		resp = append(resp, toSelectionResponse(s))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetSelectionCount returns how many times a repository has been selected.
func (h *Handler) GetSelectionCount(w http.ResponseWriter, r *http.Request) {
	fullName := r.PathValue("owner") + "/" + r.PathValue("repo")
	if !model.IsValidFullName(fullName) {
		writeError(w, http.StatusBadRequest, "invalid repository name")
		return
	}

	n, err := h.selectionSvc.TimesSelected(r.Context(), fullName)
	if err != nil {
		h.logger.Error("failed to count selections", "full_name", fullName, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, SelectionCountResponse{FullName: fullName, Count: n})
}

// Health reports the combined component status. A degraded service still
// answers 200; only a down component yields 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	summary := h.healthSvc.Check(r.Context())

	status := http.StatusOK
	if summary.Status == application.HealthDown {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, toHealthResponse(summary, time.Now()))
}

// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ericfisherdev/repobrowser/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/repobrowser/internal/adapter/driving/web/templates/pages"
	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// recentSelectionsShown is the number of sidebar entries on the page.
const recentSelectionsShown = 5

// Handler is the web GUI driving adapter that serves HTML via templ components.
type Handler struct {
	registry   *application.BrowserRegistry
	selections *application.SelectionService
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	registry *application.BrowserRegistry,
	selections *application.SelectionService,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		registry:   registry,
		selections: selections,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Browser renders the repository browser page, mounting a browser for the
// session on first visit.
func (h *Handler) Browser(w http.ResponseWriter, r *http.Request) {
	token := csrfToken(w, r)
	sid := ensureSession(w, r, h.sessionTTL)

	b, _ := h.registry.Get(r.Context(), sid)
	state := b.Snapshot()

	recent, err := h.selections.Recent(r.Context(), recentSelectionsShown)
	if err != nil {
		h.logger.Error("failed to load recent selections", "error", err)
		recent = nil
	}

	component := pages.Browser(toBrowserViewModel(state, recent, token))
	layout := templates.Layout("Most Starred Repos", component)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render browser", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// SelectWindow changes the time window, clearing accumulated results.
func (h *Handler) SelectWindow(w http.ResponseWriter, r *http.Request) {
	b, ok := h.browserForPost(w, r)
	if !ok {
		return
	}

	window, err := model.ParseTimeWindow(r.FormValue("window"))
	if err != nil {
		http.Error(w, "invalid time window", http.StatusBadRequest)
		return
	}

	b.SelectWindow(r.Context(), window)
	redirectHome(w, r)
}

// NextPage advances one page.
func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	b, ok := h.browserForPost(w, r)
	if !ok {
		return
	}

	b.NextPage(r.Context())
	redirectHome(w, r)
}

// PrevPage retreats one page; a no-op on page 1.
func (h *Handler) PrevPage(w http.ResponseWriter, r *http.Request) {
	b, ok := h.browserForPost(w, r)
	if !ok {
		return
	}

	b.PrevPage(r.Context())
	redirectHome(w, r)
}

// Select invokes the selection callback for the posted repository, which must
// be one of the entries currently listed. Callback failures are logged and
// otherwise ignored.
func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	b, ok := h.browserForPost(w, r)
	if !ok {
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	if !model.IsValidFullName(fullName) {
		http.Error(w, "invalid repository name", http.StatusBadRequest)
		return
	}

	err := b.Select(r.Context(), fullName)
	if errors.Is(err, application.ErrRepositoryNotListed) {
		http.Error(w, "repository is not listed", http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.Error("selection callback failed", "full_name", fullName, "error", err)
	}
	redirectHome(w, r)
}

// Reset unmounts the session's browser and expires its cookie.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return
	}

	if sid, ok := sessionID(r); ok {
		h.registry.Unmount(sid)
	}
	clearSession(w)
	redirectHome(w, r)
}

// browserForPost validates CSRF and resolves the session's browser. It writes
// the response and returns false when the request cannot proceed.
func (h *Handler) browserForPost(w http.ResponseWriter, r *http.Request) (*application.Browser, bool) {
	if !validateCSRF(r) {
		http.Error(w, "invalid CSRF token", http.StatusForbidden)
		return nil, false
	}

	sid, ok := sessionID(r)
	if !ok {
		redirectHome(w, r)
		return nil, false
	}
	setSessionCookie(w, sid, h.sessionTTL)

	b, _ := h.registry.Get(r.Context(), sid)
	return b, true
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

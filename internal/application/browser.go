// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
	"github.com/ericfisherdev/repobrowser/internal/domain/port/driven"
)

// SelectionFunc is invoked with a repository's full name when the user selects
// it. The browser does not interpret the result beyond logging an error.
type SelectionFunc func(ctx context.Context, sel model.Selection) error

// Browser owns the state of one repository browser and runs its fetch cycle.
//
// Every transition that changes (window, page) bumps a generation counter and
// cancels the previous in-flight fetch. A response is applied only if its
// generation is still current, so a late response for a superseded page is
// discarded instead of appended out of order.
type Browser struct {
	searcher driven.RepoSearcher
	onSelect SelectionFunc
	now      func() time.Time
	logger   *slog.Logger

	mu          sync.Mutex
	state       model.BrowserState
	generation  uint64
	cancelFetch context.CancelFunc
	lastActive  time.Time
}

// NewBrowser creates an unmounted Browser starting at window. onSelect may be
// nil, in which case selections are only logged.
func NewBrowser(searcher driven.RepoSearcher, window model.TimeWindow, onSelect SelectionFunc, logger *slog.Logger) *Browser {
	return &Browser{
		searcher:   searcher,
		onSelect:   onSelect,
		now:        time.Now,
		logger:     logger,
		state:      model.NewBrowserState(window),
		lastActive: time.Now(),
	}
}

// Mount dispatches the initial fetch.
func (b *Browser) Mount(ctx context.Context) {
	b.Dispatch(ctx, model.MountEvent{})
}

// SelectWindow clears accumulated results, resets to page 1, and refetches.
func (b *Browser) SelectWindow(ctx context.Context, w model.TimeWindow) {
	b.Dispatch(ctx, model.SelectWindowEvent{Window: w})
}

// NextPage advances one page and fetches it.
func (b *Browser) NextPage(ctx context.Context) {
	b.Dispatch(ctx, model.NextPageEvent{})
}

// PrevPage retreats one page and fetches it. It is a no-op on page 1.
func (b *Browser) PrevPage(ctx context.Context) {
	b.Dispatch(ctx, model.PrevPageEvent{})
}

// Dispatch applies ev and, if the transition requires it, fetches the page for
// the resulting (window, page). Dispatch blocks until that fetch completes or
// is superseded. Fetch errors are logged and otherwise swallowed.
func (b *Browser) Dispatch(ctx context.Context, ev model.BrowserEvent) {
	b.mu.Lock()
	next, refetch := model.Reduce(b.state, ev)
	b.state = next
	b.lastActive = b.now()
	if !refetch {
		b.mu.Unlock()
		return
	}

	if b.cancelFetch != nil {
		b.cancelFetch()
	}
	b.generation++
	gen := b.generation
	window, page := next.Window, next.Page

	fetchCtx, cancel := context.WithCancel(ctx)
	b.cancelFetch = cancel
	b.mu.Unlock()

	defer cancel()
	b.fetch(fetchCtx, gen, window, page)
}

func (b *Browser) fetch(ctx context.Context, gen uint64, window model.TimeWindow, page int) {
	cutoff := model.Cutoff(b.now(), window)

	items, err := b.searcher.SearchRecentlyCreated(ctx, cutoff, page)

	b.mu.Lock()
	defer b.mu.Unlock()

	stale := gen != b.generation
	if err != nil {
		if stale && errors.Is(err, context.Canceled) {
			b.logger.Debug("superseded fetch canceled", "window", window, "page", page)
			return
		}
		b.logger.Error("error fetching repos",
			"window", window,
			"cutoff", cutoff,
			"page", page,
			"error", err,
		)
		return
	}

	if stale {
		b.logger.Debug("discarding stale fetch result",
			"window", window,
			"page", page,
			"count", len(items),
		)
		return
	}

	b.state, _ = model.Reduce(b.state, model.AppendResultsEvent{Items: items})
	b.cancelFetch = nil
	b.logger.Debug("fetched repos",
		"window", window,
		"cutoff", cutoff,
		"page", page,
		"count", len(items),
		"total", len(b.state.Repos),
	)
}

// Select invokes the selection callback with the given repository's full name.
// The repository must be among the accumulated results.
func (b *Browser) Select(ctx context.Context, fullName string) error {
	b.mu.Lock()
	if !b.state.Lists(fullName) {
		b.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrRepositoryNotListed, fullName)
	}
	sel := model.Selection{
		FullName:   fullName,
		Window:     b.state.Window,
		Page:       b.state.Page,
		SelectedAt: b.now().UTC(),
	}
	b.lastActive = b.now()
	b.mu.Unlock()

	if b.onSelect == nil {
		b.logger.Info("repository selected", "full_name", fullName)
		return nil
	}
	return b.onSelect(ctx, sel)
}

// Snapshot returns a copy of the current state for rendering.
func (b *Browser) Snapshot() model.BrowserState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// Unmount cancels any in-flight fetch. The browser must not be used afterwards.
func (b *Browser) Unmount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancelFetch != nil {
		b.cancelFetch()
		b.cancelFetch = nil
	}
	b.generation++
}

// idleSince returns the time of the last user interaction.
func (b *Browser) idleSince() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastActive
}

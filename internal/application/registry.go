package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// janitorInterval bounds how often idle sessions are swept.
const janitorInterval = time.Minute

// BrowserRegistry maps browser sessions to their mounted Browser. A Browser
// lives from its first request until it is idle for longer than the TTL or is
// explicitly unmounted.
type BrowserRegistry struct {
	provider      *SearcherProvider
	onSelect      SelectionFunc
	defaultWindow model.TimeWindow
	ttl           time.Duration
	logger        *slog.Logger
	now           func() time.Time

	mu       sync.Mutex
	browsers map[string]*Browser
}

// NewBrowserRegistry creates an empty registry. Each Browser it mounts uses
// the searcher currently held by provider.
func NewBrowserRegistry(
	provider *SearcherProvider,
	onSelect SelectionFunc,
	defaultWindow model.TimeWindow,
	ttl time.Duration,
	logger *slog.Logger,
) *BrowserRegistry {
	return &BrowserRegistry{
		provider:      provider,
		onSelect:      onSelect,
		defaultWindow: defaultWindow,
		ttl:           ttl,
		logger:        logger,
		now:           time.Now,
		browsers:      make(map[string]*Browser),
	}
}

// Get returns the Browser for sessionID, mounting a new one (and running its
// initial fetch) if none exists. The boolean reports whether it was mounted
// by this call.
func (r *BrowserRegistry) Get(ctx context.Context, sessionID string) (*Browser, bool) {
	r.mu.Lock()
	if b, ok := r.browsers[sessionID]; ok {
		r.mu.Unlock()
		return b, false
	}

	b := NewBrowser(r.provider.Get(), r.defaultWindow, r.onSelect, r.logger.With("session", shortID(sessionID)))
	b.now = r.now
	r.browsers[sessionID] = b
	r.mu.Unlock()

	r.logger.Debug("browser mounted", "session", shortID(sessionID))
	b.Mount(ctx)
	return b, true
}

// Lookup returns the Browser for sessionID without mounting one.
func (r *BrowserRegistry) Lookup(sessionID string) (*Browser, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.browsers[sessionID]
	return b, ok
}

// Unmount discards the Browser for sessionID. It is a no-op for unknown IDs.
func (r *BrowserRegistry) Unmount(sessionID string) {
	r.mu.Lock()
	b, ok := r.browsers[sessionID]
	delete(r.browsers, sessionID)
	r.mu.Unlock()

	if ok {
		b.Unmount()
		r.logger.Debug("browser unmounted", "session", shortID(sessionID))
	}
}

// Len returns the number of mounted browsers.
func (r *BrowserRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.browsers)
}

// Start sweeps idle browsers until ctx is canceled.
func (r *BrowserRegistry) Start(ctx context.Context) error {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("browser registry stopped")
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("idle browsers unmounted", "count", n, "remaining", r.Len())
			}
		}
	}
}

// Sweep unmounts every browser idle for longer than the TTL and returns how
// many were removed.
func (r *BrowserRegistry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*Browser
	for id, b := range r.browsers {
		if b.idleSince().Before(cutoff) {
			expired = append(expired, b)
			delete(r.browsers, id)
		}
	}
	r.mu.Unlock()

	for _, b := range expired {
		b.Unmount()
	}
	return len(expired)
}

// shortID truncates a session ID for log output.
func shortID(id string) string {
	const n = 8
	if len(id) > n {
		return id[:n]
	}
	return id
}

package application

import (
	"context"
	"sync"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
	"github.com/ericfisherdev/repobrowser/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RepoSearcher = (*SearcherProvider)(nil)

// SearcherProvider enables runtime hot-swap of the repository searcher.
// It holds a mutex-protected reference to the current driven.RepoSearcher,
// allowing a token change to take effect without restarting the application:
// the serve command replaces the GitHub client on SIGHUP. The provider itself
// satisfies driven.RepoSearcher by delegating.
type SearcherProvider struct {
	mu       sync.RWMutex
	searcher driven.RepoSearcher
}

// NewSearcherProvider creates a new provider with the given initial searcher.
func NewSearcherProvider(searcher driven.RepoSearcher) *SearcherProvider {
	return &SearcherProvider{searcher: searcher}
}

// Get returns a searcher that always delegates to the currently held one, so
// browsers mounted before a Replace pick up the replacement.
func (p *SearcherProvider) Get() driven.RepoSearcher {
	return p
}

// Current returns the searcher currently held.
func (p *SearcherProvider) Current() driven.RepoSearcher {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.searcher
}

// Replace swaps the current searcher.
func (p *SearcherProvider) Replace(searcher driven.RepoSearcher) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searcher = searcher
}

// HasSearcher returns true if a non-nil searcher is currently held.
func (p *SearcherProvider) HasSearcher() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.searcher != nil
}

// SearchRecentlyCreated delegates to the current searcher.
func (p *SearcherProvider) SearchRecentlyCreated(ctx context.Context, cutoff string, page int) ([]model.Repository, error) {
	s := p.Current()
	if s == nil {
		return nil, ErrNoSearcher
	}
	return s.SearchRecentlyCreated(ctx, cutoff, page)
}

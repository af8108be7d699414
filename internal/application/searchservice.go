package application

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
	"github.com/ericfisherdev/repobrowser/internal/domain/port/driven"
)

// SearchPage is one stateless page of search results.
type SearchPage struct {
	Window model.TimeWindow
	Cutoff string
	Page   int
	Items  []model.Repository
}

// SearchService runs single-page searches without browser state. It backs the
// JSON API and the CLI.
type SearchService struct {
	searcher driven.RepoSearcher
	now      func() time.Time
}

// NewSearchService creates a SearchService using searcher.
func NewSearchService(searcher driven.RepoSearcher) *SearchService {
	return &SearchService{searcher: searcher, now: time.Now}
}

// Page fetches page of repositories created within window.
func (s *SearchService) Page(ctx context.Context, window model.TimeWindow, page int) (SearchPage, error) {
	if !window.Valid() {
		return SearchPage{}, fmt.Errorf("%w: %q", model.ErrUnknownTimeWindow, window)
	}
	if page < 1 {
		return SearchPage{}, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}

	cutoff := model.Cutoff(s.now(), window)
	items, err := s.searcher.SearchRecentlyCreated(ctx, cutoff, page)
	if err != nil {
		return SearchPage{}, err
	}
	if items == nil {
		items = []model.Repository{}
	}

	return SearchPage{Window: window, Cutoff: cutoff, Page: page, Items: items}, nil
}

package application

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// searchCall records one SearchRecentlyCreated invocation.
type searchCall struct {
	cutoff string
	page   int
}

// mockSearcher is a driven.RepoSearcher whose behavior is set per test.
type mockSearcher struct {
	mu     sync.Mutex
	calls  []searchCall
	search func(ctx context.Context, cutoff string, page int) ([]model.Repository, error)
}

func (m *mockSearcher) SearchRecentlyCreated(ctx context.Context, cutoff string, page int) ([]model.Repository, error) {
	m.mu.Lock()
	m.calls = append(m.calls, searchCall{cutoff: cutoff, page: page})
	m.mu.Unlock()
	return m.search(ctx, cutoff, page)
}

func (m *mockSearcher) recorded() []searchCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]searchCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// pagedSearcher returns a searcher that serves fixed items per page and an
// empty slice for any other page.
func pagedSearcher(pages map[int][]model.Repository) *mockSearcher {
	return &mockSearcher{
		search: func(_ context.Context, _ string, page int) ([]model.Repository, error) {
			if items, ok := pages[page]; ok {
				return items, nil
			}
			return []model.Repository{}, nil
		},
	}
}

type mockSelectionStore struct {
	mu     sync.Mutex
	added  []model.Selection
	addErr error
	list   []model.Selection
	count  int
	err    error
}

func (m *mockSelectionStore) Add(_ context.Context, sel model.Selection) (model.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.addErr != nil {
		return model.Selection{}, m.addErr
	}
	sel.ID = int64(len(m.added) + 1)
	m.added = append(m.added, sel)
	return sel, nil
}

func (m *mockSelectionStore) ListRecent(_ context.Context, limit int) ([]model.Selection, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.list) > limit {
		return m.list[:limit], nil
	}
	return m.list, nil
}

func (m *mockSelectionStore) CountByRepository(_ context.Context, _ string) (int, error) {
	return m.count, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func repo(id int64, fullName string, stars int) model.Repository {
	return model.Repository{
		ID:              id,
		FullName:        fullName,
		StargazersCount: stars,
		Owner:           model.Owner{Login: "owner"},
	}
}

func names(repos []model.Repository) []string {
	out := make([]string, 0, len(repos))
	for _, r := range repos {
		out = append(out, r.FullName)
	}
	return out
}

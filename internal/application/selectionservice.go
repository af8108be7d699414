package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
	"github.com/ericfisherdev/repobrowser/internal/domain/port/driven"
)

// defaultRecentLimit caps ListRecent when the caller passes a non-positive limit.
const defaultRecentLimit = 10

// SelectionService is the embedding application's side of the selection
// callback: it records each selected repository.
type SelectionService struct {
	store  driven.SelectionStore
	logger *slog.Logger
}

// NewSelectionService creates a SelectionService backed by store.
func NewSelectionService(store driven.SelectionStore, logger *slog.Logger) *SelectionService {
	return &SelectionService{store: store, logger: logger}
}

// OnSelect records sel. Its signature matches SelectionFunc.
func (s *SelectionService) OnSelect(ctx context.Context, sel model.Selection) error {
	saved, err := s.store.Add(ctx, sel)
	if err != nil {
		return fmt.Errorf("record selection of %s: %w", sel.FullName, err)
	}

	s.logger.Info("repository selected",
		"full_name", saved.FullName,
		"window", saved.Window,
		"page", saved.Page,
	)
	return nil
}

// Recent returns up to limit selections, newest first.
func (s *SelectionService) Recent(ctx context.Context, limit int) ([]model.Selection, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	sels, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent selections: %w", err)
	}
	if sels == nil {
		sels = []model.Selection{}
	}
	return sels, nil
}

// TimesSelected returns how often fullName has been selected.
func (s *SelectionService) TimesSelected(ctx context.Context, fullName string) (int, error) {
	n, err := s.store.CountByRepository(ctx, fullName)
	if err != nil {
		return 0, fmt.Errorf("count selections of %s: %w", fullName, err)
	}
	return n, nil
}

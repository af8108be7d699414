package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
	"github.com/ericfisherdev/repobrowser/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SelectionStore = (*SelectionRepo)(nil)

// SelectionRepo is the SQLite implementation of the SelectionStore port interface.
type SelectionRepo struct {
	db *DB
}

// NewSelectionRepo creates a new SelectionRepo backed by the given DB.
func NewSelectionRepo(db *DB) *SelectionRepo {
	return &SelectionRepo{db: db}
}

// Add inserts a selection and returns it with its assigned ID. A zero
// SelectedAt is replaced with the current time.
func (r *SelectionRepo) Add(ctx context.Context, sel model.Selection) (model.Selection, error) {
	const query = `INSERT INTO selections (full_name, time_window, page, selected_at) VALUES (?, ?, ?, ?)`

	if sel.SelectedAt.IsZero() {
		sel.SelectedAt = time.Now().UTC()
	}

	result, err := r.db.Writer.ExecContext(ctx, query,
		sel.FullName, string(sel.Window), sel.Page, sel.SelectedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return model.Selection{}, fmt.Errorf("add selection %s: %w", sel.FullName, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Selection{}, fmt.Errorf("get selection id: %w", err)
	}
	sel.ID = id

	return sel, nil
}

// ListRecent returns up to limit selections, newest first.
func (r *SelectionRepo) ListRecent(ctx context.Context, limit int) ([]model.Selection, error) {
	const query = `SELECT id, full_name, time_window, page, selected_at FROM selections ORDER BY id DESC LIMIT ?`

	rows, err := r.db.Reader.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer rows.Close()

	var sels []model.Selection
	for rows.Next() {
		sel, err := scanSelection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		sels = append(sels, *sel)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate selections: %w", err)
	}

	return sels, nil
}

// CountByRepository returns how many times fullName has been selected.
func (r *SelectionRepo) CountByRepository(ctx context.Context, fullName string) (int, error) {
	const query = `SELECT COUNT(*) FROM selections WHERE full_name = ?`

	var n int
	if err := r.db.Reader.QueryRowContext(ctx, query, fullName).Scan(&n); err != nil {
		return 0, fmt.Errorf("count selections of %s: %w", fullName, err)
	}

	return n, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSelection(s scanner) (*model.Selection, error) {
	var sel model.Selection
	var window, selectedAt string

	err := s.Scan(&sel.ID, &sel.FullName, &window, &sel.Page, &selectedAt)
	if err != nil {
		return nil, err
	}
	sel.Window = model.TimeWindow(window)

	sel.SelectedAt, err = parseTime(selectedAt)
	if err != nil {
		return nil, fmt.Errorf("parse selected_at: %w", err)
	}

	return &sel, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}

package driven

import (
	"context"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// SelectionStore defines the driven port for selection history persistence.
type SelectionStore interface {
	Add(ctx context.Context, sel model.Selection) (model.Selection, error)
	// ListRecent returns up to limit selections, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Selection, error)
	CountByRepository(ctx context.Context, fullName string) (int, error)
}

package driven

import (
	"context"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// RepoSearcher defines the driven port for querying the repository search API.
type RepoSearcher interface {
	// SearchRecentlyCreated returns one page of repositories created after
	// cutoff (YYYY-MM-DD), sorted by star count descending. Pages start at 1.
	// An empty slice past the last page is not an error.
	SearchRecentlyCreated(ctx context.Context, cutoff string, page int) ([]model.Repository, error)
}

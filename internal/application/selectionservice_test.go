package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

func TestSelectionService_OnSelectRecords(t *testing.T) {
	store := &mockSelectionStore{}
	svc := NewSelectionService(store, discardLogger())

	sel := model.Selection{FullName: "a/one", Window: model.WindowOneWeek, Page: 3, SelectedAt: fixedNow}
	require.NoError(t, svc.OnSelect(context.Background(), sel))

	require.Len(t, store.added, 1)
	assert.Equal(t, "a/one", store.added[0].FullName)
	assert.Equal(t, 3, store.added[0].Page)
}

func TestSelectionService_OnSelectWrapsError(t *testing.T) {
	store := &mockSelectionStore{addErr: errors.New("disk full")}
	svc := NewSelectionService(store, discardLogger())

	err := svc.OnSelect(context.Background(), model.Selection{FullName: "a/one"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record selection of a/one")
}

func TestSelectionService_RecentDefaultsLimit(t *testing.T) {
	list := make([]model.Selection, 0, 15)
	for i := range 15 {
		list = append(list, model.Selection{ID: int64(i), SelectedAt: fixedNow.Add(-time.Duration(i) * time.Minute)})
	}
	svc := NewSelectionService(&mockSelectionStore{list: list}, discardLogger())

	got, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, defaultRecentLimit)
}

func TestSelectionService_RecentNeverNil(t *testing.T) {
	svc := NewSelectionService(&mockSelectionStore{}, discardLogger())

	got, err := svc.Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSelectionService_BrowserCallbackWiring(t *testing.T) {
	store := &mockSelectionStore{}
	svc := NewSelectionService(store, discardLogger())
	s := pagedSearcher(map[int][]model.Repository{1: {repo(1, "octo/rocket", 500)}})
	b := newTestBrowser(s, model.WindowOneMonth, svc.OnSelect)
	b.Mount(context.Background())

	require.NoError(t, b.Select(context.Background(), "octo/rocket"))

	require.Len(t, store.added, 1)
	assert.Equal(t, model.WindowOneMonth, store.added[0].Window)
}

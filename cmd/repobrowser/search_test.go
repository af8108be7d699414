package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

func TestPrintPage(t *testing.T) {
	color.NoColor = true

	page := application.SearchPage{
		Window: model.WindowTwoWeeks,
		Cutoff: "2026-10-05",
		Page:   2,
		Items: []model.Repository{
			{FullName: "octo/rocket", Description: " fast ", StargazersCount: 12345, OpenIssuesCount: 7},
			{FullName: "jane/tiny", StargazersCount: 15},
		},
	}

	var buf bytes.Buffer
	printPage(&buf, page)
	out := buf.String()

	assert.Contains(t, out, "created after 2026-10-05 (2 weeks, page 2)")
	assert.Contains(t, out, "  1. octo/rocket  ★ 12,345  issues 7\n")
	assert.Contains(t, out, "     fast\n")
	assert.Contains(t, out, "  2. jane/tiny  ★ 15  issues 0\n")
	assert.Contains(t, out, "2 repos, 12,360 stars total, median 6,180.0")
}

func TestPrintPage_Empty(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printPage(&buf, application.SearchPage{Window: model.WindowOneWeek, Cutoff: "2026-10-12", Page: 1, Items: []model.Repository{}})

	assert.Contains(t, buf.String(), "No repositories found.")
	assert.NotContains(t, buf.String(), "stars total")
}

func TestRunSearch_RejectsUnknownWindow(t *testing.T) {
	err := runSearch(context.Background(), &bytes.Buffer{}, searchOptions{window: "1y", page: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrUnknownTimeWindow)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "search"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	search, _, err := root.Find([]string{"search"})
	require.NoError(t, err)
	assert.Equal(t, "1m", search.Flag("window").DefValue)
	assert.Equal(t, "1", search.Flag("page").DefValue)
}

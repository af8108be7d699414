package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	githubadapter "github.com/ericfisherdev/repobrowser/internal/adapter/driven/github"
	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/config"
	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

type searchOptions struct {
	window string
	page   int
}

func newSearchCmd() *cobra.Command {
	opts := searchOptions{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Print one page of the most starred recently created repositories",
		Example: `  repobrowser search --window 1w
  repobrowser search --window "2 weeks" --page 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.window, "window", "w", model.DefaultTimeWindow.Short(), "time window: 1w, 2w or 1m")
	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "result page, starting at 1")
	return cmd
}

func runSearch(ctx context.Context, out io.Writer, opts searchOptions) error {
	window, err := model.ParseTimeWindow(opts.window)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))

	svc := application.NewSearchService(githubadapter.NewClient(cfg.GitHubToken))
	page, err := svc.Page(ctx, window, opts.page)
	if err != nil {
		return err
	}

	printPage(out, page)
	return nil
}

// printPage writes a colored listing of one search page.
func printPage(out io.Writer, page application.SearchPage) {
	p := message.NewPrinter(language.English)

	title := color.New(color.FgGreen, color.Underline)
	name := color.New(color.FgCyan, color.Bold)
	stars := color.New(color.FgYellow)

	title.Fprintf(out, "Most starred repos created after %s (%s, page %d)\n", page.Cutoff, page.Window.Label(), page.Page)

	if len(page.Items) == 0 {
		fmt.Fprintln(out, "No repositories found.")
		return
	}

	for i, r := range page.Items {
		fmt.Fprintf(out, "%3d. ", i+1)
		name.Fprint(out, r.FullName)
		stars.Fprint(out, p.Sprintf("  ★ %d", r.StargazersCount))
		fmt.Fprint(out, p.Sprintf("  issues %d\n", r.OpenIssuesCount))
		if desc := strings.TrimSpace(r.Description); desc != "" {
			fmt.Fprintf(out, "     %s\n", desc)
		}
	}

	sum := application.Summarize(page.Items)
	fmt.Fprint(out, p.Sprintf("\n%d repos, %d stars total, median %.1f\n", sum.Count, sum.Total, sum.Median))
}

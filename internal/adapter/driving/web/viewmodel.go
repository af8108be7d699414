package web

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	vm "github.com/ericfisherdev/repobrowser/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/repobrowser/internal/application"
	"github.com/ericfisherdev/repobrowser/internal/domain/model"
)

// numberPrinter formats counts with thousands separators.
var numberPrinter = message.NewPrinter(language.English)

// toBrowserViewModel converts browser state and selection history into the page view model.
func toBrowserViewModel(state model.BrowserState, recent []model.Selection, csrfToken string) vm.BrowserViewModel {
	windows := make([]vm.WindowOptionViewModel, 0, len(model.TimeWindows()))
	for _, w := range model.TimeWindows() {
		windows = append(windows, vm.WindowOptionViewModel{
			Value:    string(w),
			Label:    w.Label(),
			Selected: w == state.Window,
		})
	}

	return vm.BrowserViewModel{
		CSRFToken:      csrfToken,
		Windows:        windows,
		Repos:          toRepoCardViewModels(state.Repos),
		Page:           state.Page,
		ShowPagination: state.ShowPagination(),
		CanGoBack:      state.CanGoBack(),
		Summary:        toSummaryViewModel(application.Summarize(state.Repos)),
		Recent:         toSelectionViewModels(recent),
	}
}

// toRepoCardViewModels converts accumulated repositories to card view models.
// Keys are positional because the list may contain the same repository twice.
func toRepoCardViewModels(repos []model.Repository) []vm.RepoCardViewModel {
	vms := make([]vm.RepoCardViewModel, 0, len(repos))
	for i, r := range repos {
		vms = append(vms, vm.RepoCardViewModel{
			Key:             fmt.Sprintf("%d-%d", i, r.ID),
			FullName:        r.FullName,
			DescriptionHTML: RenderDescription(r.Description),
			Stars:           formatCount(r.StargazersCount),
			OpenIssues:      formatCount(r.OpenIssuesCount),
			OwnerLogin:      r.Owner.Login,
			AvatarURL:       SanitizeImageURL(r.Owner.AvatarURL),
			HTMLURL:         r.HTMLURL,
		})
	}
	return vms
}

func toSummaryViewModel(s application.StarSummary) vm.SummaryViewModel {
	return vm.SummaryViewModel{
		Count:  formatCount(s.Count),
		Total:  formatCount(s.Total),
		Mean:   numberPrinter.Sprintf("%.0f", s.Mean),
		Median: numberPrinter.Sprintf("%.0f", s.Median),
	}
}

func toSelectionViewModels(sels []model.Selection) []vm.SelectionViewModel {
	vms := make([]vm.SelectionViewModel, 0, len(sels))
	for _, s := range sels {
		vms = append(vms, vm.SelectionViewModel{
			FullName:   s.FullName,
			Window:     s.Window.Label(),
			Page:       s.Page,
			SelectedAt: s.SelectedAt.UTC().Format(time.RFC3339),
		})
	}
	return vms
}

func formatCount(n int) string {
	return numberPrinter.Sprintf("%d", n)
}

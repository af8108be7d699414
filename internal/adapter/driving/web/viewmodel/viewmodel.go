// Package viewmodel defines presentation-ready structs for templ components.
// View models decouple template rendering from domain model types.
package viewmodel

// RepoCardViewModel holds presentation-ready data for one repository entry.
type RepoCardViewModel struct {
	Key             string
	FullName        string
	DescriptionHTML string
	Stars           string
	OpenIssues      string
	OwnerLogin      string
	AvatarURL       string
	HTMLURL         string
}

// WindowOptionViewModel is one entry of the time window dropdown.
type WindowOptionViewModel struct {
	Value    string
	Label    string
	Selected bool
}

// SummaryViewModel holds the formatted star statistics shown above the list.
type SummaryViewModel struct {
	Count  string
	Total  string
	Mean   string
	Median string
}

// SelectionViewModel is one row of the recent selections sidebar.
type SelectionViewModel struct {
	FullName   string
	Window     string
	Page       int
	SelectedAt string
}

// BrowserViewModel holds everything needed to render the repository browser page.
type BrowserViewModel struct {
	CSRFToken      string
	Windows        []WindowOptionViewModel
	Repos          []RepoCardViewModel
	Page           int
	ShowPagination bool
	CanGoBack      bool
	Summary        SummaryViewModel
	Recent         []SelectionViewModel
}

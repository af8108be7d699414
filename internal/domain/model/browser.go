package model

import "slices"

// BrowserState is the complete state of one repository browser: the selected
// window, the current page, and every repository accumulated so far.
type BrowserState struct {
	Window TimeWindow
	Page   int
	Repos  []Repository
}

// NewBrowserState returns the state of a freshly mounted browser.
func NewBrowserState(w TimeWindow) BrowserState {
	if !w.Valid() {
		w = DefaultTimeWindow
	}
	return BrowserState{Window: w, Page: 1, Repos: []Repository{}}
}

// ShowPagination reports whether the Previous/Next controls should be rendered.
func (s BrowserState) ShowPagination() bool {
	return len(s.Repos) > 0
}

// CanGoBack reports whether Previous is enabled.
func (s BrowserState) CanGoBack() bool {
	return s.Page > 1
}

// Lists reports whether fullName is among the accumulated repositories.
func (s BrowserState) Lists(fullName string) bool {
	return slices.ContainsFunc(s.Repos, func(r Repository) bool {
		return r.FullName == fullName
	})
}

// Clone returns a copy whose Repos slice does not alias s.
func (s BrowserState) Clone() BrowserState {
	repos := make([]Repository, len(s.Repos))
	copy(repos, s.Repos)
	s.Repos = repos
	return s
}

// BrowserEvent is a user or lifecycle event applied through Reduce.
type BrowserEvent interface {
	browserEvent()
}

// MountEvent is dispatched once when a browser is created.
type MountEvent struct{}

// SelectWindowEvent changes the time window.
type SelectWindowEvent struct {
	Window TimeWindow
}

// NextPageEvent advances one page.
type NextPageEvent struct{}

// PrevPageEvent retreats one page.
type PrevPageEvent struct{}

// AppendResultsEvent carries the items of a successful fetch.
type AppendResultsEvent struct {
	Items []Repository
}

func (MountEvent) browserEvent()         {}
func (SelectWindowEvent) browserEvent()  {}
func (NextPageEvent) browserEvent()      {}
func (PrevPageEvent) browserEvent()      {}
func (AppendResultsEvent) browserEvent() {}

// Reduce applies ev to s and returns the next state plus whether a fetch for
// the next state's (window, page) must be issued. s is never modified.
//
// Selecting a window always clears the accumulated list and resets the page,
// even when the same window is picked again. Previous on page 1 is a no-op.
// Retreating a page does not clear the list; the earlier page is fetched and
// appended again.
func Reduce(s BrowserState, ev BrowserEvent) (BrowserState, bool) {
	switch e := ev.(type) {
	case MountEvent:
		return s.Clone(), true

	case SelectWindowEvent:
		if !e.Window.Valid() {
			return s.Clone(), false
		}
		return BrowserState{Window: e.Window, Page: 1, Repos: []Repository{}}, true

	case NextPageEvent:
		next := s.Clone()
		next.Page++
		return next, true

	case PrevPageEvent:
		if s.Page <= 1 {
			return s.Clone(), false
		}
		next := s.Clone()
		next.Page--
		return next, true

	case AppendResultsEvent:
		next := s.Clone()
		next.Repos = append(next.Repos, e.Items...)
		return next, false

	default:
		return s.Clone(), false
	}
}

package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownTimeWindow is returned by ParseTimeWindow for unrecognized input.
var ErrUnknownTimeWindow = errors.New("unknown time window")

// TimeWindow is the lookback period bounding which repositories are queried.
type TimeWindow string

const (
	WindowOneWeek  TimeWindow = "1 week"
	WindowTwoWeeks TimeWindow = "2 weeks"
	WindowOneMonth TimeWindow = "1 month"
)

// DefaultTimeWindow is the window a freshly mounted browser starts with.
const DefaultTimeWindow = WindowOneMonth

// cutoffLayout is the ISO calendar date format used in search qualifiers.
const cutoffLayout = "2006-01-02"

// TimeWindows returns every selectable window in display order.
func TimeWindows() []TimeWindow {
	return []TimeWindow{WindowOneWeek, WindowTwoWeeks, WindowOneMonth}
}

// Days returns the number of days covered by the window, or 0 if unknown.
func (w TimeWindow) Days() int {
	switch w {
	case WindowOneWeek:
		return 7
	case WindowTwoWeeks:
		return 14
	case WindowOneMonth:
		return 30
	default:
		return 0
	}
}

// Label returns the human-readable option text.
func (w TimeWindow) Label() string {
	return string(w)
}

// Short returns the compact form used in query strings and CLI flags.
func (w TimeWindow) Short() string {
	switch w {
	case WindowOneWeek:
		return "1w"
	case WindowTwoWeeks:
		return "2w"
	case WindowOneMonth:
		return "1m"
	default:
		return ""
	}
}

// Valid reports whether w is one of the three fixed windows.
func (w TimeWindow) Valid() bool {
	return w.Days() > 0
}

// ParseTimeWindow accepts either the label ("2 weeks") or the short form ("2w").
func ParseTimeWindow(s string) (TimeWindow, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for _, w := range TimeWindows() {
		if normalized == string(w) || normalized == w.Short() {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTimeWindow, s)
}

// Cutoff returns the earliest creation date included in a search for the given
// window, formatted as YYYY-MM-DD. The date is computed in UTC.
func Cutoff(now time.Time, w TimeWindow) string {
	return now.UTC().AddDate(0, 0, -w.Days()).Format(cutoffLayout)
}

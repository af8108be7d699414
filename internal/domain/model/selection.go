package model

import "time"

// Selection records one invocation of the browser's selection callback.
type Selection struct {
	ID         int64
	FullName   string
	Window     TimeWindow
	Page       int
	SelectedAt time.Time
}

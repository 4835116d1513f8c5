package model

import "time"

// Activity is the four-level classification of how busy a calendar day is,
// derived from the number of non-deleted todos scheduled on it.
type Activity string

const (
	ActivityNone   Activity = "NONE"
	ActivityLow    Activity = "LOW"
	ActivityMedium Activity = "MEDIUM"
	ActivityHigh   Activity = "HIGH"
)

// ActivityForCount classifies a day's todo count: 0 is NONE, 1 is LOW,
// 2 is MEDIUM, 3 or more is HIGH.
func ActivityForCount(total int) Activity {
	switch {
	case total == 0:
		return ActivityNone
	case total == 1:
		return ActivityLow
	case total == 2:
		return ActivityMedium
	default:
		return ActivityHigh
	}
}

// DailyActivity is the derived per-day summary rendered in the calendar
// heat map. It is computed from the store on demand and never persisted.
type DailyActivity struct {
	Date       time.Time `json:"date"`
	TotalTodos int       `json:"total_todos"`
	DoneTodos  int       `json:"done_todos"`
	Activity   Activity  `json:"activity"`
}

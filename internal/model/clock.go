package model

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock reminder time with no date component,
// stored as "HH:MM" text.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ParseTimeOfDay parses "HH:MM" (24-hour) text.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("parsing time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// String renders the time as zero-padded "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors the time of day to the calendar date of ref, in ref's
// location.
func (t TimeOfDay) On(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), t.Hour, t.Minute, 0, 0, ref.Location())
}

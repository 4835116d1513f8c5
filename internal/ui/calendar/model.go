package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/czhang/todobox/internal/model"
	"github.com/czhang/todobox/internal/theme"
)

// Model renders the activity heat map: a Monday-to-Sunday week strip, or
// the full month grid when expanded.
type Model struct {
	width        int
	expanded     bool
	selectedDate time.Time
	activities   map[string]model.DailyActivity
}

// New creates a calendar model centered on the given date.
func New(selectedDate time.Time, width int) Model {
	return Model{
		width:        width,
		selectedDate: selectedDate,
		activities:   make(map[string]model.DailyActivity),
	}
}

// SetWidth updates the available render width.
func (m *Model) SetWidth(width int) {
	m.width = width
}

// SetSelectedDate moves the highlight to the given day.
func (m *Model) SetSelectedDate(date time.Time) {
	m.selectedDate = date
}

// SetExpanded switches between the week strip and the month grid.
func (m *Model) SetExpanded(expanded bool) {
	m.expanded = expanded
}

// Expanded reports whether the month grid is shown.
func (m Model) Expanded() bool {
	return m.expanded
}

// SetActivities replaces the per-day summaries backing the heat map.
func (m *Model) SetActivities(activities []model.DailyActivity) {
	m.activities = make(map[string]model.DailyActivity, len(activities))
	for _, a := range activities {
		m.activities[dayKey(a.Date)] = a
	}
}

// View renders the calendar.
func (m Model) View() string {
	if m.expanded {
		return m.viewMonth()
	}
	return m.viewWeek()
}

// viewWeek renders one row covering the selected date's week.
func (m Model) viewWeek() string {
	monday := WeekStart(m.selectedDate)

	var cells []string
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		cells = append(cells, m.renderDay(day, true))
	}

	header := theme.HelpStyle.Render(m.selectedDate.Format("January 2006"))
	return header + "\n" + strings.Join(cells, " ")
}

// viewMonth renders the full month grid padded to complete weeks with
// the neighboring months' days.
func (m Model) viewMonth() string {
	dates := MonthGridDates(m.selectedDate.Year(), m.selectedDate.Month())

	var b strings.Builder
	b.WriteString(theme.HelpStyle.Render(m.selectedDate.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(theme.DimStyle.Render(" Mo  Tu  We  Th  Fr  Sa  Su"))

	for i, day := range dates {
		if i%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(m.renderDay(day, day.Month() == m.selectedDate.Month()))
	}
	return b.String()
}

// renderDay renders one heat-map cell.
func (m Model) renderDay(day time.Time, inMonth bool) string {
	label := fmt.Sprintf("%2d", day.Day())

	style := theme.DimStyle
	if inMonth {
		activity := model.ActivityNone
		if a, ok := m.activities[dayKey(day)]; ok {
			activity = a.Activity
		}
		style = theme.ActivityStyle(activity)
	}
	if sameDay(day, m.selectedDate) {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(" " + label + " ")
}

// MonthGridDates returns every date shown in the month grid: the month's
// days plus enough leading days from the previous month and trailing days
// from the next to start on Monday and end on Sunday. The result length
// is always a multiple of 7.
func MonthGridDates(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := WeekStart(first)
	end := WeekStart(last).AddDate(0, 0, 6)

	var dates []time.Time
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day)
	}
	return dates
}

// WeekStart returns the Monday of the week containing t, at midnight UTC.
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	t = t.AddDate(0, 0, 1-weekday)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayKey normalizes a timestamp to its calendar day for map lookups.
func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

func sameDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b)
}

package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	// 2026-05-13 is a Wednesday.
	wed := time.Date(2026, time.May, 13, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.May, 11, 0, 0, 0, 0, time.UTC), WeekStart(wed))

	// Sunday belongs to the week that started the previous Monday.
	sun := time.Date(2026, time.May, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.May, 11, 0, 0, 0, 0, time.UTC), WeekStart(sun))

	mon := time.Date(2026, time.May, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, mon, WeekStart(mon))
}

func TestMonthGridDates(t *testing.T) {
	// May 2026 starts on a Friday and ends on a Sunday.
	dates := MonthGridDates(2026, time.May)

	require.NotEmpty(t, dates)
	assert.Zero(t, len(dates)%7, "grid is whole weeks")

	assert.Equal(t, time.Monday, dates[0].Weekday())
	assert.Equal(t, time.Sunday, dates[len(dates)-1].Weekday())

	// Leading pad reaches back to Monday April 27.
	assert.Equal(t, time.Date(2026, time.April, 27, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC), dates[len(dates)-1])

	for i := 1; i < len(dates); i++ {
		assert.Equal(t, dates[i-1].AddDate(0, 0, 1), dates[i], "dates are consecutive")
	}
}

func TestMonthGridDatesFebruary(t *testing.T) {
	// February 2027 starts on Monday and spans exactly four weeks.
	dates := MonthGridDates(2027, time.February)
	assert.Len(t, dates, 28)
	assert.Equal(t, time.Date(2027, time.February, 1, 0, 0, 0, 0, time.UTC), dates[0])
}

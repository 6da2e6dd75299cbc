package services

import (
	"testing"
	"time"

	"github.com/studytube/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStreak(t *testing.T) {
	today := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	daysAgo := func(n ...int) []time.Time {
		dates := make([]time.Time, len(n))
		for i, d := range n {
			day := today.AddDate(0, 0, -d)
			dates[i] = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		}
		return dates
	}

	tests := []struct {
		name     string
		dates    []time.Time
		expected int
	}{
		{name: "no activity", dates: nil, expected: 0},
		{name: "only today", dates: daysAgo(0), expected: 1},
		{name: "today and yesterday", dates: daysAgo(0, 1), expected: 2},
		{name: "yesterday and the day before, nothing yet today", dates: daysAgo(2, 1), expected: 2},
		{name: "only five days ago", dates: daysAgo(5), expected: 0},
		{name: "gap of two days", dates: daysAgo(2, 3, 4), expected: 0},
		{name: "gap breaks the walk", dates: daysAgo(0, 1, 3, 4), expected: 2},
		{name: "duplicates count once", dates: append(daysAgo(0, 1), daysAgo(1)...), expected: 2},
		{name: "unordered", dates: daysAgo(3, 0, 2, 1), expected: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateStreak(tt.dates, today))
		})
	}
}

func TestCalculateStreak_Cap(t *testing.T) {
	today := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 400)
	for i := range dates {
		dates[i] = today.AddDate(0, 0, -i)
	}

	assert.Equal(t, 365, CalculateStreak(dates, today))
}

func TestCalendarLevel(t *testing.T) {
	tests := []struct {
		count    int
		expected int
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {7, 4}, {8, 4}, {20, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, calendarLevel(tt.count), "count %d", tt.count)
	}
}

func TestBuildCalendar(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	entries := []models.StreakEntry{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), WatchedCount: 3},
		{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), WatchedCount: 9},
	}

	days := BuildCalendar(entries, from, to)

	require.Len(t, days, 5)
	assert.Equal(t, models.CalendarDay{Date: "2024-01-01", Count: 0, Level: 0}, days[0])
	assert.Equal(t, models.CalendarDay{Date: "2024-01-02", Count: 3, Level: 2}, days[1])
	assert.Equal(t, models.CalendarDay{Date: "2024-01-05", Count: 9, Level: 4}, days[4])
}

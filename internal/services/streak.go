package services

import (
	"time"

	"github.com/studytube/backend/internal/models"
)

const (
	dayLayout     = "2006-01-02"
	maxStreakDays = 365
	maxLevel      = 4
)

func dayKey(t time.Time) string {
	return t.UTC().Format(dayLayout)
}

// CalculateStreak counts consecutive active days ending today
//
// A day without activity today does not break the streak as long as yesterday
// was active. The result is capped at 365.
func CalculateStreak(dates []time.Time, today time.Time) int {
	active := make(map[string]bool, len(dates))
	for _, d := range dates {
		active[dayKey(d)] = true
	}

	day := today.UTC()
	if !active[dayKey(day)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for streak < maxStreakDays && active[dayKey(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// calendarLevel maps a day's watched count onto a 0-4 intensity
func calendarLevel(count int) int {
	if count <= 0 {
		return 0
	}
	return min((count+1)/2, maxLevel)
}

// BuildCalendar returns one cell per day from "from" to "to" inclusive
func BuildCalendar(entries []models.StreakEntry, from, to time.Time) []models.CalendarDay {
	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[dayKey(e.Date)] += e.WatchedCount
	}

	from, to = from.UTC(), to.UTC()
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	days := make([]models.CalendarDay, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		days = append(days, models.CalendarDay{
			Date:  key,
			Count: counts[key],
			Level: calendarLevel(counts[key]),
		})
	}
	return days
}

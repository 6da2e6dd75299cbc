package models

import "time"

// StreakEntry counts the videos an owner completed on one calendar day
type StreakEntry struct {
	OwnerID      string    `json:"ownerId"`
	Date         time.Time `json:"date"`
	WatchedCount int       `json:"watchedCount"`
}

// CalendarDay is one cell of the streak calendar
//
// Level is the display intensity from 0 to 4.
type CalendarDay struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// Stats is the dashboard summary for an owner
type Stats struct {
	WatchedVideos    int `json:"watchedVideos"`
	ActiveStreak     int `json:"activeStreak"`
	TotalCourses     int `json:"totalCourses"`
	BookmarkedVideos int `json:"bookmarkedVideos"`
}

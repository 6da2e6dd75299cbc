package models

import "time"

// ProgressRecord is an owner's state for one video, created lazily on first interaction
type ProgressRecord struct {
	OwnerID     string     `json:"ownerId"`
	VideoID     string     `json:"videoId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Bookmarked  bool       `json:"bookmarked"`
	Notes       string     `json:"notes"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// SavedVideoItem represents a bookmarked or annotated video with its course
type SavedVideoItem struct {
	VideoID     string    `json:"videoId"`
	Title       string    `json:"title"`
	Thumbnail   string    `json:"thumbnail"`
	Duration    string    `json:"duration"`
	CourseID    int64     `json:"courseId"`
	CourseTitle string    `json:"courseTitle"`
	Completed   bool      `json:"completed"`
	Notes       string    `json:"notes,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompletionResult reports the state after a completion request
//
// Changed is false when the video was already completed.
type CompletionResult struct {
	VideoID     string     `json:"videoId"`
	Completed   bool       `json:"completed"`
	Changed     bool       `json:"changed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// BookmarkResult reports the bookmark state after a toggle
type BookmarkResult struct {
	VideoID    string `json:"videoId"`
	Bookmarked bool   `json:"bookmarked"`
}

// SaveNotesRequest represents a request to replace a video's notes
type SaveNotesRequest struct {
	Notes string `json:"notes"`
}

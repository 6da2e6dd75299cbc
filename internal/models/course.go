package models

import "time"

// Course is an owner's imported copy of a YouTube playlist
type Course struct {
	ID         int64     `json:"id"`
	OwnerID    string    `json:"ownerId"`
	PlaylistID string    `json:"playlistId"`
	Title      string    `json:"title"`
	Thumbnail  string    `json:"thumbnail"`
	VideoCount int       `json:"videoCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CourseListItem represents a course in list responses, with the owner's completion count
type CourseListItem struct {
	Course
	CompletedCount int `json:"completedCount"`
}

// CourseDetailResponse represents a course with its videos and the owner's progress on them
type CourseDetailResponse struct {
	Course         Course              `json:"course"`
	Videos         []VideoWithProgress `json:"videos"`
	CompletedCount int                 `json:"completedCount"`
}

// QuotaStatus reports how many more courses an owner may import
type QuotaStatus struct {
	CanImport    bool `json:"canImport"`
	CurrentCount int  `json:"currentCount"`
	MaxCount     int  `json:"maxCount"`
	Remaining    int  `json:"remaining"`
}

// ImportRequest represents a request to import a playlist
type ImportRequest struct {
	PlaylistURL string `json:"playlistUrl"`
	OwnerID     string `json:"ownerId,omitempty"`
}

// ImportResult is the outcome of a successful import
type ImportResult struct {
	Course     *Course
	VideoCount int
}

// ImportResponse represents the import endpoint response
type ImportResponse struct {
	Success      bool    `json:"success"`
	Course       *Course `json:"course,omitempty"`
	VideoCount   int     `json:"videoCount,omitempty"`
	Message      string  `json:"message,omitempty"`
	Error        string  `json:"error,omitempty"`
	LimitReached bool    `json:"limitReached,omitempty"`
}

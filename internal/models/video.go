package models

// Video is one entry of an imported course
//
// VideoID is the YouTube video id; Position is 0-based and contiguous within the course.
type Video struct {
	ID        int64  `json:"id"`
	CourseID  int64  `json:"courseId"`
	VideoID   string `json:"videoId"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
	Position  int    `json:"position"`
}

// VideoWithProgress represents a video together with the owner's progress on it
type VideoWithProgress struct {
	Video
	Completed  bool   `json:"completed"`
	Bookmarked bool   `json:"bookmarked"`
	Notes      string `json:"notes"`
}

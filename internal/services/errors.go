package services

import (
	"errors"
)

var (
	// ErrCourseNotFound is returned when a course does not exist or belongs to another owner
	ErrCourseNotFound = errors.New("course not found")
	// ErrVideoNotFound is returned when a video is not part of any of the owner's courses
	ErrVideoNotFound = errors.New("video not found")
	// ErrInvalidCheckpoint is returned for negative or non-finite playback positions
	ErrInvalidCheckpoint = errors.New("invalid checkpoint")
	// ErrNotesTooLong is returned when notes exceed the stored length limit
	ErrNotesTooLong = errors.New("notes exceed the length limit")
)

// ImportErrorKind classifies why an import failed
type ImportErrorKind string

const (
	KindMissingConfiguration ImportErrorKind = "missing_configuration"
	KindInvalidURL           ImportErrorKind = "invalid_url"
	KindLimitReached         ImportErrorKind = "limit_reached"
	KindDuplicatePlaylist    ImportErrorKind = "duplicate_playlist"
	KindUpstreamFetch        ImportErrorKind = "upstream_fetch"
	KindEmptyPlaylist        ImportErrorKind = "empty_playlist"
	KindPersistence          ImportErrorKind = "persistence"
)

// Messages shown to the user; the wrapped cause carries the details for the logs
const (
	msgMissingConfiguration = "YouTube API is not configured on the server. Please contact the administrator."
	msgMissingInput         = "Missing required information. Please try again."
	msgInvalidURL           = "Could not extract playlist ID from URL. Please ensure you're using a valid YouTube playlist URL with 'list=' parameter."
	msgLimitReached         = "Limit reached. Complete or delete a playlist to import more."
	msgDuplicateFormat      = "This playlist %q has already been imported."
	msgEmptyPlaylist        = "This playlist appears to be empty or all videos are private/deleted."
	msgQuotaExceeded        = "YouTube API quota exceeded. Please try again in a few minutes."
	msgPlaylistNotFound     = "Playlist not found. Please check the URL and make sure the playlist is public."
	msgPlaylistPrivate      = "This playlist is private. Please make sure the playlist is public or unlisted."
	msgFetchFailed          = "Failed to fetch playlist data from YouTube. Please check the URL and try again."
	msgCheckLimitFailed     = "Database error: Could not check playlist limit. Please try again."
	msgCheckExistingFailed  = "Database error: Could not check existing courses. Please try again."
	msgCreateCourseFailed   = "Database error: Could not create course. Please try again."
	msgCreateVideosFailed   = "Database error: Could not create videos. Please try again."
)

// ImportError is returned by every failed import
type ImportError struct {
	Kind ImportErrorKind
	// Message is safe to show to the user
	Message string
	// LimitReached is set when the owner already has the maximum number of courses
	LimitReached bool
	Err          error
}

func newImportError(kind ImportErrorKind, message string, err error) *ImportError {
	return &ImportError{
		Kind:         kind,
		Message:      message,
		LimitReached: kind == KindLimitReached,
		Err:          err,
	}
}

func (e *ImportError) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

package models

import "time"

// PlaybackCheckpoint is the last persisted playback position of an owner on a video
type PlaybackCheckpoint struct {
	OwnerID   string    `json:"ownerId"`
	VideoID   string    `json:"videoId"`
	Position  float64   `json:"position"`
	Duration  float64   `json:"duration"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaveCheckpointRequest represents a request to store a playback position
type SaveCheckpointRequest struct {
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studytube/backend/internal/models"
)

type checkpointRepository struct {
	db *sql.DB
}

// NewCheckpointRepository creates a new playback checkpoint repository
func NewCheckpointRepository(db *sql.DB) *checkpointRepository {
	return &checkpointRepository{
		db: db,
	}
}

// Get retrieves the last stored playback position of the owner on the video
func (r *checkpointRepository) Get(ctx context.Context, ownerID, videoID string) (*models.PlaybackCheckpoint, error) {
	query := `
		SELECT owner_id, video_id, position_seconds, duration_seconds, updated_at
		FROM playback_checkpoints
		WHERE owner_id = ? AND video_id = ?
		LIMIT 1
	`

	var checkpoint models.PlaybackCheckpoint
	err := r.db.QueryRowContext(ctx, query, ownerID, videoID).Scan(
		&checkpoint.OwnerID,
		&checkpoint.VideoID,
		&checkpoint.Position,
		&checkpoint.Duration,
		&checkpoint.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("checkpoint %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	return &checkpoint, nil
}

// Upsert stores the playback position, replacing any previous one
func (r *checkpointRepository) Upsert(ctx context.Context, checkpoint *models.PlaybackCheckpoint) error {
	query := `
		INSERT INTO playback_checkpoints (owner_id, video_id, position_seconds, duration_seconds, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			position_seconds = VALUES(position_seconds),
			duration_seconds = VALUES(duration_seconds),
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		checkpoint.OwnerID,
		checkpoint.VideoID,
		checkpoint.Position,
		checkpoint.Duration,
		checkpoint.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}

	return nil
}

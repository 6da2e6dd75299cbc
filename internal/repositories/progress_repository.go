package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studytube/backend/internal/models"
)

type progressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *sql.DB) *progressRepository {
	return &progressRepository{
		db: db,
	}
}

// MarkCompleted marks the video completed at "at" and counts it in that day's streak entry
//
// Returns false, without touching completed_at or the streak, when the video was already
// completed. The check relies on MySQL reporting 0 affected rows for an upsert that
// changes nothing, which holds while the driver runs without clientFoundRows.
func (r *progressRepository) MarkCompleted(ctx context.Context, ownerID, videoID string, at time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_progress (owner_id, video_id, completed, completed_at, bookmarked, notes, updated_at)
		VALUES (?, ?, TRUE, ?, FALSE, '', ?)
		ON DUPLICATE KEY UPDATE
			completed_at = IF(completed, completed_at, VALUES(completed_at)),
			updated_at = IF(completed, updated_at, VALUES(updated_at)),
			completed = TRUE
	`

	result, err := tx.ExecContext(ctx, query, ownerID, videoID, at, at)
	if err != nil {
		return false, fmt.Errorf("failed to mark video completed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, incrementStreakQuery, ownerID, at.Format(dateLayout)); err != nil {
		return false, fmt.Errorf("failed to increment streak activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

// Get retrieves the owner's progress on a video
func (r *progressRepository) Get(ctx context.Context, ownerID, videoID string) (*models.ProgressRecord, error) {
	query := `
		SELECT owner_id, video_id, completed, completed_at, bookmarked, notes, updated_at
		FROM user_progress
		WHERE owner_id = ? AND video_id = ?
		LIMIT 1
	`

	var (
		record      models.ProgressRecord
		completedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, ownerID, videoID).Scan(
		&record.OwnerID,
		&record.VideoID,
		&record.Completed,
		&completedAt,
		&record.Bookmarked,
		&record.Notes,
		&record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("progress %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}

	if completedAt.Valid {
		t := completedAt.Time
		record.CompletedAt = &t
	}

	return &record, nil
}

// ToggleBookmark flips the bookmark flag of the video and returns the new value
func (r *progressRepository) ToggleBookmark(ctx context.Context, ownerID, videoID string, at time.Time) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO user_progress (owner_id, video_id, completed, completed_at, bookmarked, notes, updated_at)
		VALUES (?, ?, FALSE, NULL, TRUE, '', ?)
		ON DUPLICATE KEY UPDATE
			bookmarked = NOT bookmarked,
			updated_at = VALUES(updated_at)
	`
	if _, err := tx.ExecContext(ctx, query, ownerID, videoID, at); err != nil {
		return false, fmt.Errorf("failed to toggle bookmark: %w", err)
	}

	var bookmarked bool
	err = tx.QueryRowContext(ctx,
		`SELECT bookmarked FROM user_progress WHERE owner_id = ? AND video_id = ?`,
		ownerID, videoID,
	).Scan(&bookmarked)
	if err != nil {
		return false, fmt.Errorf("failed to read bookmark: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return bookmarked, nil
}

// SaveNotes replaces the owner's notes on the video
func (r *progressRepository) SaveNotes(ctx context.Context, ownerID, videoID, notes string, at time.Time) error {
	query := `
		INSERT INTO user_progress (owner_id, video_id, completed, completed_at, bookmarked, notes, updated_at)
		VALUES (?, ?, FALSE, NULL, FALSE, ?, ?)
		ON DUPLICATE KEY UPDATE
			notes = VALUES(notes),
			updated_at = VALUES(updated_at)
	`

	if _, err := r.db.ExecContext(ctx, query, ownerID, videoID, notes, at); err != nil {
		return fmt.Errorf("failed to save notes: %w", err)
	}

	return nil
}

const savedVideosQuery = `
	SELECT
		v.video_id,
		v.title,
		v.thumbnail,
		v.duration,
		c.id,
		c.title,
		p.completed,
		p.notes,
		p.updated_at
	FROM user_progress p
	JOIN videos v ON v.video_id = p.video_id
	JOIN courses c ON c.id = v.course_id AND c.owner_id = p.owner_id
	WHERE p.owner_id = ? AND %s
	ORDER BY p.updated_at DESC, v.video_id
`

// GetBookmarks retrieves the owner's bookmarked videos, most recently updated first
func (r *progressRepository) GetBookmarks(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error) {
	return r.querySaved(ctx, fmt.Sprintf(savedVideosQuery, "p.bookmarked = TRUE"), ownerID)
}

// GetNotes retrieves the owner's videos with non-empty notes, most recently updated first
func (r *progressRepository) GetNotes(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error) {
	return r.querySaved(ctx, fmt.Sprintf(savedVideosQuery, "p.notes <> ''"), ownerID)
}

func (r *progressRepository) querySaved(ctx context.Context, query, ownerID string) ([]models.SavedVideoItem, error) {
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query saved videos: %w", err)
	}
	defer rows.Close()

	items := make([]models.SavedVideoItem, 0)
	for rows.Next() {
		var item models.SavedVideoItem
		if err := rows.Scan(
			&item.VideoID,
			&item.Title,
			&item.Thumbnail,
			&item.Duration,
			&item.CourseID,
			&item.CourseTitle,
			&item.Completed,
			&item.Notes,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan saved video: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved videos: %w", err)
	}

	return items, nil
}

// CountCompleted counts the videos the owner has completed
func (r *progressRepository) CountCompleted(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_progress WHERE owner_id = ? AND completed = TRUE`,
		ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completed videos: %w", err)
	}
	return count, nil
}

// CountBookmarked counts the videos the owner has bookmarked
func (r *progressRepository) CountBookmarked(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM user_progress WHERE owner_id = ? AND bookmarked = TRUE`,
		ownerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookmarked videos: %w", err)
	}
	return count, nil
}

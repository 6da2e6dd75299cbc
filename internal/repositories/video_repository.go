package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/studytube/backend/internal/models"
)

// videoInsertBatchSize is the number of rows per multi-row INSERT
const videoInsertBatchSize = 50

type videoRepository struct {
	db *sql.DB
}

// NewVideoRepository creates a new video repository
func NewVideoRepository(db *sql.DB) *videoRepository {
	return &videoRepository{
		db: db,
	}
}

// CreateBatch inserts the videos of a course in one transaction and returns the number of rows inserted
//
// Videos are written in multi-row batches; any failing batch rolls back all of them.
func (r *videoRepository) CreateBatch(ctx context.Context, courseID int64, videos []models.Video) (int, error) {
	if len(videos) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for start := 0; start < len(videos); start += videoInsertBatchSize {
		batch := videos[start:min(start+videoInsertBatchSize, len(videos))]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*6)
		for i, v := range batch {
			placeholders[i] = "(?, ?, ?, ?, ?, ?)"
			args = append(args, courseID, v.VideoID, v.Title, v.Thumbnail, v.Duration, v.Position)
		}

		query := `INSERT INTO videos (course_id, video_id, title, thumbnail, duration, position) VALUES ` +
			strings.Join(placeholders, ", ")

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert videos %d-%d: %w", start, start+len(batch)-1, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// GetByCourseIDWithProgress retrieves the videos of a course in playlist order with the owner's progress
func (r *videoRepository) GetByCourseIDWithProgress(ctx context.Context, courseID int64, ownerID string) ([]models.VideoWithProgress, error) {
	query := `
		SELECT
			v.id,
			v.course_id,
			v.video_id,
			v.title,
			v.thumbnail,
			v.duration,
			v.position,
			COALESCE(p.completed, FALSE),
			COALESCE(p.bookmarked, FALSE),
			COALESCE(p.notes, '')
		FROM videos v
		LEFT JOIN user_progress p ON p.video_id = v.video_id AND p.owner_id = ?
		WHERE v.course_id = ?
		ORDER BY v.position
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query videos: %w", err)
	}
	defer rows.Close()

	videos := make([]models.VideoWithProgress, 0)
	for rows.Next() {
		var v models.VideoWithProgress
		if err := rows.Scan(
			&v.ID,
			&v.CourseID,
			&v.VideoID,
			&v.Title,
			&v.Thumbnail,
			&v.Duration,
			&v.Position,
			&v.Completed,
			&v.Bookmarked,
			&v.Notes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	return videos, nil
}

// ExistsForOwner checks whether videoID belongs to one of the owner's courses
func (r *videoRepository) ExistsForOwner(ctx context.Context, ownerID, videoID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM videos v
			JOIN courses c ON c.id = v.course_id
			WHERE c.owner_id = ? AND v.video_id = ?
		)
	`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, ownerID, videoID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check video ownership: %w", err)
	}

	return exists, nil
}

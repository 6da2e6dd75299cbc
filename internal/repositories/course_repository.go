package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studytube/backend/internal/models"
)

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// Create inserts a course and sets its generated ID
//
// A second course for the same owner and playlist fails with ErrDuplicate.
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (owner_id, playlist_id, title, thumbnail, video_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.OwnerID,
		course.PlaylistID,
		course.Title,
		course.Thumbnail,
		course.VideoCount,
		course.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("course %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = id
	return nil
}

// GetByID retrieves a course of the owner by its ID
func (r *courseRepository) GetByID(ctx context.Context, id int64, ownerID string) (*models.Course, error) {
	query := `
		SELECT id, owner_id, playlist_id, title, thumbnail, video_count, created_at
		FROM courses
		WHERE id = ? AND owner_id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&course.ID,
		&course.OwnerID,
		&course.PlaylistID,
		&course.Title,
		&course.Thumbnail,
		&course.VideoCount,
		&course.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by id: %w", err)
	}

	return &course, nil
}

// GetByPlaylistID retrieves the owner's course imported from playlistID
func (r *courseRepository) GetByPlaylistID(ctx context.Context, ownerID, playlistID string) (*models.Course, error) {
	query := `
		SELECT id, owner_id, playlist_id, title, thumbnail, video_count, created_at
		FROM courses
		WHERE owner_id = ? AND playlist_id = ?
		LIMIT 1
	`

	var course models.Course
	err := r.db.QueryRowContext(ctx, query, ownerID, playlistID).Scan(
		&course.ID,
		&course.OwnerID,
		&course.PlaylistID,
		&course.Title,
		&course.Thumbnail,
		&course.VideoCount,
		&course.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course by playlist id: %w", err)
	}

	return &course, nil
}

// GetByOwner retrieves the owner's courses, newest first, with completed video counts
func (r *courseRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.CourseListItem, error) {
	query := `
		SELECT
			c.id,
			c.owner_id,
			c.playlist_id,
			c.title,
			c.thumbnail,
			c.video_count,
			c.created_at,
			COUNT(p.video_id) AS completed_count
		FROM courses c
		LEFT JOIN videos v ON v.course_id = c.id
		LEFT JOIN user_progress p ON p.video_id = v.video_id AND p.owner_id = c.owner_id AND p.completed = TRUE
		WHERE c.owner_id = ?
		GROUP BY c.id, c.owner_id, c.playlist_id, c.title, c.thumbnail, c.video_count, c.created_at
		ORDER BY c.created_at DESC, c.id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.CourseListItem, 0)
	for rows.Next() {
		var item models.CourseListItem
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.PlaylistID,
			&item.Title,
			&item.Thumbnail,
			&item.VideoCount,
			&item.CreatedAt,
			&item.CompletedCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	return courses, nil
}

// CountByOwner counts the owner's courses
func (r *courseRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `SELECT COUNT(*) FROM courses WHERE owner_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}

	return count, nil
}

// Delete removes a course of the owner together with its videos and the owner's
// progress and checkpoints on them
//
// Progress on a video that also belongs to another of the owner's courses is kept.
func (r *courseRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM courses WHERE id = ? AND owner_id = ? FOR UPDATE`, id, ownerID).Scan(&lockedID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("course %w", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock course: %w", err)
	}

	// Both progress tables are keyed by owner and YouTube video id, not by course
	for _, table := range []string{"user_progress", "playback_checkpoints"} {
		query := fmt.Sprintf(`
			DELETE t FROM %s t
			JOIN videos v ON v.video_id = t.video_id AND v.course_id = ?
			WHERE t.owner_id = ?
			AND NOT EXISTS (
				SELECT 1 FROM videos v2
				JOIN courses c2 ON c2.id = v2.course_id
				WHERE v2.video_id = t.video_id AND c2.owner_id = ? AND c2.id <> ?
			)
		`, table)
		if _, err := tx.ExecContext(ctx, query, id, ownerID, ownerID, id); err != nil {
			return fmt.Errorf("failed to delete %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM videos WHERE course_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete videos: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM courses WHERE id = ? AND owner_id = ?`, id, ownerID); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studytube/backend/internal/models"
)

// dateLayout is the layout of DATE values passed to MySQL
const dateLayout = "2006-01-02"

const incrementStreakQuery = `
	INSERT INTO streak_activity (owner_id, activity_date, videos_watched)
	VALUES (?, ?, 1)
	ON DUPLICATE KEY UPDATE videos_watched = videos_watched + 1
`

type streakRepository struct {
	db *sql.DB
}

// NewStreakRepository creates a new streak repository
func NewStreakRepository(db *sql.DB) *streakRepository {
	return &streakRepository{
		db: db,
	}
}

// GetSince retrieves the owner's activity days on or after since, oldest first
func (r *streakRepository) GetSince(ctx context.Context, ownerID string, since time.Time) ([]models.StreakEntry, error) {
	query := `
		SELECT owner_id, activity_date, videos_watched
		FROM streak_activity
		WHERE owner_id = ? AND activity_date >= ?
		ORDER BY activity_date
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, since.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query streak activity: %w", err)
	}
	defer rows.Close()

	entries := make([]models.StreakEntry, 0)
	for rows.Next() {
		var e models.StreakEntry
		if err := rows.Scan(&e.OwnerID, &e.Date, &e.WatchedCount); err != nil {
			return nil, fmt.Errorf("failed to scan streak activity: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating streak activity: %w", err)
	}

	return entries, nil
}

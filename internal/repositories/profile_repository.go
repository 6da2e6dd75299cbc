package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studytube/backend/internal/models"
)

type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sql.DB) *profileRepository {
	return &profileRepository{
		db: db,
	}
}

// Upsert creates or replaces the owner's profile
func (r *profileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (owner_id, email, display_name, reminders_enabled, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			email = VALUES(email),
			display_name = VALUES(display_name),
			reminders_enabled = VALUES(reminders_enabled),
			updated_at = VALUES(updated_at)
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.OwnerID,
		profile.Email,
		profile.DisplayName,
		profile.RemindersEnabled,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// GetByOwner retrieves the owner's profile
func (r *profileRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error) {
	query := `
		SELECT owner_id, email, display_name, reminders_enabled, updated_at
		FROM profiles
		WHERE owner_id = ?
		LIMIT 1
	`

	var profile models.Profile
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(
		&profile.OwnerID,
		&profile.Email,
		&profile.DisplayName,
		&profile.RemindersEnabled,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// GetReminderCandidates retrieves owners with reminders enabled whose latest activity day is day
//
// These are the owners whose streak ends unless they watch something on the following day.
func (r *profileRepository) GetReminderCandidates(ctx context.Context, day time.Time) ([]models.ReminderCandidate, error) {
	query := `
		SELECT p.owner_id, p.email, p.display_name, MAX(s.activity_date) AS last_active
		FROM profiles p
		JOIN streak_activity s ON s.owner_id = p.owner_id
		WHERE p.reminders_enabled = TRUE AND p.email <> ''
		GROUP BY p.owner_id, p.email, p.display_name
		HAVING last_active = ?
		ORDER BY p.owner_id
	`

	rows, err := r.db.QueryContext(ctx, query, day.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder candidates: %w", err)
	}
	defer rows.Close()

	candidates := make([]models.ReminderCandidate, 0)
	for rows.Next() {
		var c models.ReminderCandidate
		if err := rows.Scan(&c.OwnerID, &c.Email, &c.DisplayName, &c.LastActive); err != nil {
			return nil, fmt.Errorf("failed to scan reminder candidate: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reminder candidates: %w", err)
	}

	return candidates, nil
}

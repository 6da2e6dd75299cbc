package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreakRepository_GetSince(t *testing.T) {
	since := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	columns := []string{"owner_id", "activity_date", "videos_watched"}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("owner-1", time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC), 2).
					AddRow("owner-1", time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), 1)
				mock.ExpectQuery(`FROM streak_activity WHERE owner_id = \? AND activity_date >= \? ORDER BY activity_date`).
					WithArgs("owner-1", "2024-01-01").
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name: "no activity",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM streak_activity`).WillReturnRows(sqlmock.NewRows(columns))
			},
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM streak_activity`).WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name: "scan error",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(columns).
					AddRow("owner-1", time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC), "many")
				mock.ExpectQuery(`FROM streak_activity`).WillReturnRows(rows)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()
			repo := NewStreakRepository(db)

			tt.setupMock(mock)

			entries, err := repo.GetSince(context.Background(), "owner-1", since)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, entries)
			} else {
				require.NoError(t, err)
				assert.Len(t, entries, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

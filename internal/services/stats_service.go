package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studytube/backend/internal/models"
	"go.uber.org/zap"
)

// StreakRepository is the interface that wraps methods for streak_activity table data access
type StreakRepository interface {
	// Method GetSince retrieves the owner's activity days on or after a date, oldest first.
	//
	// "ctx" is the context for the request.
	// "ownerID" is the ID of the owner.
	// "since" is the first day to include.
	// Returns a list of streak entries and an error if any.
	GetSince(ctx context.Context, ownerID string, since time.Time) ([]models.StreakEntry, error)
}

// ProgressCounter is the interface that wraps the progress counters shown on the dashboard
type ProgressCounter interface {
	CountCompleted(ctx context.Context, ownerID string) (int, error)
	CountBookmarked(ctx context.Context, ownerID string) (int, error)
}

type statsService struct {
	courses  CourseCounter
	progress ProgressCounter
	streaks  StreakRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(courses CourseCounter, progress ProgressCounter, streaks StreakRepository, logger *zap.Logger) *statsService {
	return &statsService{
		courses:  courses,
		progress: progress,
		streaks:  streaks,
		logger:   logger,
		now:      time.Now,
	}
}

// GetStreak returns the owner's current streak in days
func (s *statsService) GetStreak(ctx context.Context, ownerID string) (int, error) {
	today := s.now().UTC()
	entries, err := s.streaks.GetSince(ctx, ownerID, today.AddDate(0, 0, -maxStreakDays))
	if err != nil {
		s.logger.Error("failed to get streak activity", zap.String("owner_id", ownerID), zap.Error(err))
		return 0, fmt.Errorf("failed to get streak activity: %w", err)
	}

	dates := make([]time.Time, len(entries))
	for i, e := range entries {
		dates[i] = e.Date
	}
	return CalculateStreak(dates, today), nil
}

// GetStats returns the dashboard summary of the owner
func (s *statsService) GetStats(ctx context.Context, ownerID string) (*models.Stats, error) {
	watched, err := s.progress.CountCompleted(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to count completed videos", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	bookmarked, err := s.progress.CountBookmarked(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to count bookmarked videos", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	courses, err := s.courses.CountByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to count courses", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	streak, err := s.GetStreak(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &models.Stats{
		WatchedVideos:    watched,
		ActiveStreak:     streak,
		TotalCourses:     courses,
		BookmarkedVideos: bookmarked,
	}, nil
}

// GetCalendar returns one cell per day from January 1st of the current year up to today
func (s *statsService) GetCalendar(ctx context.Context, ownerID string) ([]models.CalendarDay, error) {
	today := s.now().UTC()
	from := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	entries, err := s.streaks.GetSince(ctx, ownerID, from)
	if err != nil {
		s.logger.Error("failed to get streak activity", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get calendar: %w", err)
	}

	return BuildCalendar(entries, from, today), nil
}

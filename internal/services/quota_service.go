package services

import (
	"context"
	"fmt"

	"github.com/studytube/backend/internal/models"
	"go.uber.org/zap"
)

// DefaultMaxCourses is the number of courses an owner may hold at once
const DefaultMaxCourses = 4

// CourseCounter is the interface that wraps the course count lookup
type CourseCounter interface {
	// Method CountByOwner counts the courses of an owner.
	//
	// "ctx" is the context for the request.
	// "ownerID" is the ID of the owner.
	// Returns the number of courses and an error if any.
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

// ComputeQuota derives the import quota from the owner's current course count
func ComputeQuota(count, maxCount int) models.QuotaStatus {
	return models.QuotaStatus{
		CanImport:    count < maxCount,
		CurrentCount: count,
		MaxCount:     maxCount,
		Remaining:    max(0, maxCount-count),
	}
}

type quotaService struct {
	repo       CourseCounter
	maxCourses int
	logger     *zap.Logger
}

// NewQuotaService creates a new quota service
func NewQuotaService(repo CourseCounter, maxCourses int, logger *zap.Logger) *quotaService {
	if maxCourses <= 0 {
		maxCourses = DefaultMaxCourses
	}
	return &quotaService{
		repo:       repo,
		maxCourses: maxCourses,
		logger:     logger,
	}
}

// GetQuota returns the owner's current import quota
//
// The count is read on every call.
func (s *quotaService) GetQuota(ctx context.Context, ownerID string) (*models.QuotaStatus, error) {
	count, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to count courses", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get quota: %w", err)
	}

	quota := ComputeQuota(count, s.maxCourses)
	return &quota, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studytube/backend/internal/events"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/repositories"
	"go.uber.org/zap"
)

// CourseRepository is the interface that wraps methods for courses table data access
type CourseRepository interface {
	CourseCounter
	// Method Create inserts a course and sets its ID.
	//
	// "ctx" is the context for the request.
	// "course" is the course to insert; its ID field is filled on success.
	// Returns an error wrapping repositories.ErrDuplicate if the owner already imported the playlist.
	Create(ctx context.Context, course *models.Course) error
	// Method GetByID retrieves a course of the owner by its ID.
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "ownerID" is the ID of the owner.
	// Returns the course and an error wrapping repositories.ErrNotFound if there is no such course.
	GetByID(ctx context.Context, id int64, ownerID string) (*models.Course, error)
	// Method GetByPlaylistID retrieves the owner's course imported from a playlist.
	//
	// "ctx" is the context for the request.
	// "ownerID" is the ID of the owner.
	// "playlistID" is the YouTube playlist ID.
	// Returns the course and an error wrapping repositories.ErrNotFound if there is no such course.
	GetByPlaylistID(ctx context.Context, ownerID, playlistID string) (*models.Course, error)
	// Method GetByOwner retrieves the owner's courses with completed video counts, newest first.
	//
	// "ctx" is the context for the request.
	// "ownerID" is the ID of the owner.
	// Returns a list of courses and an error if any.
	GetByOwner(ctx context.Context, ownerID string) ([]models.CourseListItem, error)
	// Method Delete removes a course together with its videos and the owner's progress on them.
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "ownerID" is the ID of the owner.
	// Returns an error wrapping repositories.ErrNotFound if there is no such course.
	Delete(ctx context.Context, id int64, ownerID string) error
}

// VideoRepository is the interface that wraps methods for videos table data access
type VideoRepository interface {
	// Method CreateBatch inserts the videos of a course in one transaction.
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "videos" is the list of videos to insert.
	// Returns the number of inserted rows and an error if any.
	CreateBatch(ctx context.Context, courseID int64, videos []models.Video) (int, error)
	// Method GetByCourseIDWithProgress retrieves the videos of a course in playlist order with the owner's progress.
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "ownerID" is the ID of the owner.
	// Returns a list of videos and an error if any.
	GetByCourseIDWithProgress(ctx context.Context, courseID int64, ownerID string) ([]models.VideoWithProgress, error)
	// Method ExistsForOwner checks whether a video belongs to one of the owner's courses.
	//
	// "ctx" is the context for the request.
	// "ownerID" is the ID of the owner.
	// "videoID" is the YouTube video ID.
	// Returns true if the video belongs to the owner and an error if any.
	ExistsForOwner(ctx context.Context, ownerID, videoID string) (bool, error)
}

// EventPublisher is the interface that wraps domain event publishing
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type courseService struct {
	courseRepo CourseRepository
	videoRepo  VideoRepository
	publisher  EventPublisher
	logger     *zap.Logger
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo CourseRepository, videoRepo VideoRepository, publisher EventPublisher, logger *zap.Logger) *courseService {
	return &courseService{
		courseRepo: courseRepo,
		videoRepo:  videoRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// List retrieves the owner's courses, newest first
func (s *courseService) List(ctx context.Context, ownerID string) ([]models.CourseListItem, error) {
	courses, err := s.courseRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list courses", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// GetDetail retrieves a course with its videos and the owner's progress on each
func (s *courseService) GetDetail(ctx context.Context, ownerID string, courseID int64) (*models.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("failed to get course", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	videos, err := s.videoRepo.GetByCourseIDWithProgress(ctx, courseID, ownerID)
	if err != nil {
		s.logger.Error("failed to get course videos", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, fmt.Errorf("failed to get course videos: %w", err)
	}

	completed := 0
	for _, v := range videos {
		if v.Completed {
			completed++
		}
	}

	return &models.CourseDetailResponse{
		Course:         *course,
		Videos:         videos,
		CompletedCount: completed,
	}, nil
}

// Delete removes a course of the owner and frees a quota slot
func (s *courseService) Delete(ctx context.Context, ownerID string, courseID int64) error {
	if err := s.courseRepo.Delete(ctx, courseID, ownerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("failed to delete course", zap.Int64("course_id", courseID), zap.Error(err))
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.publisher.Publish(ctx, events.Event{
		Type:     events.CourseDeleted,
		OwnerID:  ownerID,
		CourseID: courseID,
		At:       time.Now().UTC(),
	})
	return nil
}

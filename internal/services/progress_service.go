package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/studytube/backend/internal/events"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/playback"
	"github.com/studytube/backend/internal/repositories"
	"go.uber.org/zap"
)

// ProgressRepository is the interface that wraps methods for user_progress table data access
type ProgressRepository interface {
	// Method MarkCompleted marks a video completed and counts it in that day's streak entry.
	//
	// "ctx" is the context for the request.
	// "ownerID" is the ID of the owner.
	// "videoID" is the YouTube video ID.
	// "at" is the completion time.
	// Returns false if the video was already completed and an error if any.
	MarkCompleted(ctx context.Context, ownerID, videoID string, at time.Time) (bool, error)
	// Method Get retrieves the owner's progress on a video.
	//
	// Returns an error wrapping repositories.ErrNotFound if there is no progress yet.
	Get(ctx context.Context, ownerID, videoID string) (*models.ProgressRecord, error)
	// Method ToggleBookmark flips the bookmark flag of a video.
	//
	// Returns the new bookmark state and an error if any.
	ToggleBookmark(ctx context.Context, ownerID, videoID string, at time.Time) (bool, error)
	// Method SaveNotes replaces the owner's notes on a video.
	SaveNotes(ctx context.Context, ownerID, videoID, notes string, at time.Time) error
	// Method GetBookmarks retrieves the owner's bookmarked videos.
	GetBookmarks(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error)
	// Method GetNotes retrieves the owner's videos with notes.
	GetNotes(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error)
}

// CheckpointRepository is the interface that wraps methods for playback_checkpoints table data access
type CheckpointRepository interface {
	// Method Get retrieves the stored playback position of a video.
	//
	// Returns an error wrapping repositories.ErrNotFound if there is no checkpoint.
	Get(ctx context.Context, ownerID, videoID string) (*models.PlaybackCheckpoint, error)
	// Method Upsert stores the playback position, replacing any previous one.
	Upsert(ctx context.Context, checkpoint *models.PlaybackCheckpoint) error
}

// VideoOwnership is the interface that wraps the video ownership check
type VideoOwnership interface {
	ExistsForOwner(ctx context.Context, ownerID, videoID string) (bool, error)
}

// maxNotesLength bounds the notes stored per video
const maxNotesLength = 10000

var _ playback.Store = (*progressService)(nil)

type progressService struct {
	progressRepo   ProgressRepository
	checkpointRepo CheckpointRepository
	videos         VideoOwnership
	publisher      EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewProgressService creates a new progress service
func NewProgressService(
	progressRepo ProgressRepository,
	checkpointRepo CheckpointRepository,
	videos VideoOwnership,
	publisher EventPublisher,
	logger *zap.Logger,
) *progressService {
	return &progressService{
		progressRepo:   progressRepo,
		checkpointRepo: checkpointRepo,
		videos:         videos,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *progressService) ensureOwned(ctx context.Context, ownerID, videoID string) error {
	if videoID == "" {
		return ErrVideoNotFound
	}
	ok, err := s.videos.ExistsForOwner(ctx, ownerID, videoID)
	if err != nil {
		s.logger.Error("failed to check video ownership", zap.String("video_id", videoID), zap.Error(err))
		return fmt.Errorf("failed to check video: %w", err)
	}
	if !ok {
		return ErrVideoNotFound
	}
	return nil
}

// MarkCompleted marks a video of the owner completed
//
// Completing an already completed video changes nothing and reports Changed false
// with the original completion time.
func (s *progressService) MarkCompleted(ctx context.Context, ownerID, videoID string) (*models.CompletionResult, error) {
	if err := s.ensureOwned(ctx, ownerID, videoID); err != nil {
		return nil, err
	}

	now := s.now().UTC().Truncate(time.Second)
	changed, err := s.progressRepo.MarkCompleted(ctx, ownerID, videoID, now)
	if err != nil {
		s.logger.Error("failed to mark video completed", zap.String("video_id", videoID), zap.Error(err))
		return nil, fmt.Errorf("failed to mark video completed: %w", err)
	}

	result := &models.CompletionResult{
		VideoID:   videoID,
		Completed: true,
		Changed:   changed,
	}

	if !changed {
		record, err := s.progressRepo.Get(ctx, ownerID, videoID)
		if err != nil {
			s.logger.Error("failed to read progress", zap.String("video_id", videoID), zap.Error(err))
			return nil, fmt.Errorf("failed to read progress: %w", err)
		}
		result.CompletedAt = record.CompletedAt
		return result, nil
	}

	result.CompletedAt = &now
	s.publisher.Publish(ctx, events.Event{
		Type:    events.VideoCompleted,
		OwnerID: ownerID,
		VideoID: videoID,
		At:      now,
	})
	return result, nil
}

// ToggleBookmark flips the bookmark flag of a video of the owner
func (s *progressService) ToggleBookmark(ctx context.Context, ownerID, videoID string) (*models.BookmarkResult, error) {
	if err := s.ensureOwned(ctx, ownerID, videoID); err != nil {
		return nil, err
	}

	bookmarked, err := s.progressRepo.ToggleBookmark(ctx, ownerID, videoID, s.now().UTC())
	if err != nil {
		s.logger.Error("failed to toggle bookmark", zap.String("video_id", videoID), zap.Error(err))
		return nil, fmt.Errorf("failed to toggle bookmark: %w", err)
	}

	return &models.BookmarkResult{VideoID: videoID, Bookmarked: bookmarked}, nil
}

// SaveNotes replaces the owner's notes on a video; empty notes clear them
func (s *progressService) SaveNotes(ctx context.Context, ownerID, videoID, notes string) error {
	if len(notes) > maxNotesLength {
		return fmt.Errorf("%w of %d characters", ErrNotesTooLong, maxNotesLength)
	}
	if err := s.ensureOwned(ctx, ownerID, videoID); err != nil {
		return err
	}

	if err := s.progressRepo.SaveNotes(ctx, ownerID, videoID, notes, s.now().UTC()); err != nil {
		s.logger.Error("failed to save notes", zap.String("video_id", videoID), zap.Error(err))
		return fmt.Errorf("failed to save notes: %w", err)
	}
	return nil
}

// GetCheckpoint returns the stored playback position of a video, or nil if there is none
func (s *progressService) GetCheckpoint(ctx context.Context, ownerID, videoID string) (*models.PlaybackCheckpoint, error) {
	checkpoint, err := s.checkpointRepo.Get(ctx, ownerID, videoID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error("failed to get checkpoint", zap.String("video_id", videoID), zap.Error(err))
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}
	return checkpoint, nil
}

// SaveCheckpoint stores the playback position of a video of the owner
func (s *progressService) SaveCheckpoint(ctx context.Context, ownerID, videoID string, position, duration float64) error {
	if !validSeconds(position) || !validSeconds(duration) {
		return ErrInvalidCheckpoint
	}
	if err := s.ensureOwned(ctx, ownerID, videoID); err != nil {
		return err
	}

	err := s.checkpointRepo.Upsert(ctx, &models.PlaybackCheckpoint{
		OwnerID:   ownerID,
		VideoID:   videoID,
		Position:  position,
		Duration:  duration,
		UpdatedAt: s.now().UTC(),
	})
	if err != nil {
		s.logger.Warn("failed to save checkpoint", zap.String("video_id", videoID), zap.Error(err))
		return fmt.Errorf("failed to save checkpoint: %w", err)
	}
	return nil
}

func validSeconds(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// GetBookmarks retrieves the owner's bookmarked videos with their courses
func (s *progressService) GetBookmarks(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error) {
	items, err := s.progressRepo.GetBookmarks(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to get bookmarks", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}
	return items, nil
}

// GetNotes retrieves the owner's annotated videos with their courses
func (s *progressService) GetNotes(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error) {
	items, err := s.progressRepo.GetNotes(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to get notes", zap.String("owner_id", ownerID), zap.Error(err))
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}
	return items, nil
}

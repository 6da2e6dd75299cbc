package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studytube/backend/internal/events"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/repositories"
	"github.com/studytube/backend/internal/youtube"
	"go.uber.org/zap"
)

// PlaylistFetcher is the interface that wraps playlist metadata retrieval
type PlaylistFetcher interface {
	// Method FetchPlaylist retrieves a playlist with its available videos in playlist order.
	//
	// "ctx" is the context for the request.
	// "playlistID" is the YouTube playlist ID.
	// Returns the playlist and an error wrapping one of the youtube package sentinels.
	FetchPlaylist(ctx context.Context, playlistID string) (*youtube.Playlist, error)
}

// importState is a step of a single import attempt
type importState string

const (
	stateValidating       importState = "validating"
	stateQuotaChecked     importState = "quota_checked"
	stateFetching         importState = "fetching"
	statePersistingCourse importState = "persisting_course"
	statePersistingVideos importState = "persisting_videos"
	stateDone             importState = "done"
	stateFailed           importState = "failed"
)

type importService struct {
	fetcher    PlaylistFetcher
	courseRepo CourseRepository
	videoRepo  VideoRepository
	publisher  EventPublisher
	maxCourses int
	logger     *zap.Logger
	now        func() time.Time
}

// NewImportService creates a new import service
//
// A nil fetcher makes every import fail with KindMissingConfiguration.
func NewImportService(
	fetcher PlaylistFetcher,
	courseRepo CourseRepository,
	videoRepo VideoRepository,
	publisher EventPublisher,
	maxCourses int,
	logger *zap.Logger,
) *importService {
	if maxCourses <= 0 {
		maxCourses = DefaultMaxCourses
	}
	return &importService{
		fetcher:    fetcher,
		courseRepo: courseRepo,
		videoRepo:  videoRepo,
		publisher:  publisher,
		maxCourses: maxCourses,
		logger:     logger,
		now:        time.Now,
	}
}

// Import fetches a playlist and stores it as a new course of the owner
//
// Every failure is an *ImportError. If the videos cannot be stored the course is
// deleted again, so a failed import leaves nothing behind.
func (s *importService) Import(ctx context.Context, req models.ImportRequest) (*models.ImportResult, error) {
	log := s.logger.With(zap.String("owner_id", req.OwnerID))

	result, err := s.run(ctx, log, req)
	if err != nil {
		log.Debug("import state", zap.String("state", string(stateFailed)), zap.Error(err))
		return nil, err
	}
	return result, nil
}

func (s *importService) run(ctx context.Context, log *zap.Logger, req models.ImportRequest) (*models.ImportResult, error) {
	transition := func(state importState) {
		log.Debug("import state", zap.String("state", string(state)))
	}
	transition(stateValidating)

	if s.fetcher == nil {
		log.Error("youtube api key not configured")
		return nil, newImportError(KindMissingConfiguration, msgMissingConfiguration, nil)
	}

	playlistURL := strings.TrimSpace(req.PlaylistURL)
	if playlistURL == "" || req.OwnerID == "" {
		return nil, newImportError(KindInvalidURL, msgMissingInput, nil)
	}
	if err := youtube.ValidatePlaylistURL(playlistURL); err != nil {
		return nil, newImportError(KindInvalidURL, msgInvalidURL, err)
	}
	playlistID := youtube.ExtractPlaylistID(playlistURL)
	log = log.With(zap.String("playlist_id", playlistID))

	if err := s.checkQuota(ctx, req.OwnerID); err != nil {
		return nil, err
	}
	transition(stateQuotaChecked)

	existing, err := s.courseRepo.GetByPlaylistID(ctx, req.OwnerID, playlistID)
	switch {
	case err == nil:
		return nil, newImportError(KindDuplicatePlaylist, fmt.Sprintf(msgDuplicateFormat, existing.Title), repositories.ErrDuplicate)
	case !errors.Is(err, repositories.ErrNotFound):
		log.Error("failed to check existing courses", zap.Error(err))
		return nil, newImportError(KindPersistence, msgCheckExistingFailed, err)
	}

	transition(stateFetching)
	playlist, err := s.fetcher.FetchPlaylist(ctx, playlistID)
	if err != nil {
		log.Warn("failed to fetch playlist", zap.Error(err))
		return nil, fetchError(err)
	}
	if len(playlist.Videos) == 0 {
		return nil, newImportError(KindEmptyPlaylist, msgEmptyPlaylist, youtube.ErrEmptyPlaylist)
	}

	// the fetch can take a while, another import may have finished meanwhile
	if err := s.checkQuota(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	transition(statePersistingCourse)
	course := &models.Course{
		OwnerID:    req.OwnerID,
		PlaylistID: playlistID,
		Title:      playlist.Title,
		Thumbnail:  playlist.Thumbnail,
		VideoCount: len(playlist.Videos),
		CreatedAt:  s.now().UTC().Truncate(time.Second),
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, newImportError(KindDuplicatePlaylist, fmt.Sprintf(msgDuplicateFormat, playlist.Title), err)
		}
		log.Error("failed to create course", zap.Error(err))
		return nil, newImportError(KindPersistence, msgCreateCourseFailed, err)
	}
	log = log.With(zap.Int64("course_id", course.ID))

	transition(statePersistingVideos)
	videos := make([]models.Video, len(playlist.Videos))
	for i, v := range playlist.Videos {
		videos[i] = models.Video{
			CourseID:  course.ID,
			VideoID:   v.ID,
			Title:     v.Title,
			Thumbnail: v.Thumbnail,
			Duration:  v.Duration,
			Position:  v.Position,
		}
	}

	inserted, err := s.videoRepo.CreateBatch(ctx, course.ID, videos)
	if err != nil {
		log.Error("failed to create videos", zap.Error(err))
		s.removeCourse(ctx, log, course)
		return nil, newImportError(KindPersistence, msgCreateVideosFailed, err)
	}
	course.VideoCount = inserted

	transition(stateDone)
	log.Info("playlist imported", zap.Int("videos", inserted))

	s.publisher.Publish(ctx, events.Event{
		Type:       events.CourseImported,
		OwnerID:    req.OwnerID,
		CourseID:   course.ID,
		PlaylistID: playlistID,
		VideoCount: inserted,
		At:         course.CreatedAt,
	})

	return &models.ImportResult{
		Course:     course,
		VideoCount: inserted,
	}, nil
}

// checkQuota fails with KindLimitReached when the owner holds the maximum number of courses
func (s *importService) checkQuota(ctx context.Context, ownerID string) error {
	count, err := s.courseRepo.CountByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to check playlist limit", zap.String("owner_id", ownerID), zap.Error(err))
		return newImportError(KindPersistence, msgCheckLimitFailed, err)
	}
	if !ComputeQuota(count, s.maxCourses).CanImport {
		return newImportError(KindLimitReached, msgLimitReached, nil)
	}
	return nil
}

// removeCourse undoes a partially stored import
//
// It runs even when ctx is already cancelled; a failure is only logged.
func (s *importService) removeCourse(ctx context.Context, log *zap.Logger, course *models.Course) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.courseRepo.Delete(cleanupCtx, course.ID, course.OwnerID); err != nil {
		log.Error("failed to clean up course after video creation error", zap.Error(err))
		return
	}
	log.Info("cleaned up course after video creation error")
}

// fetchError maps a fetcher failure onto the import error taxonomy
func fetchError(err error) *ImportError {
	switch {
	case errors.Is(err, youtube.ErrEmptyPlaylist):
		return newImportError(KindEmptyPlaylist, msgEmptyPlaylist, err)
	case errors.Is(err, youtube.ErrInvalidPlaylistID):
		return newImportError(KindInvalidURL, msgInvalidURL, err)
	case errors.Is(err, youtube.ErrQuotaExceeded):
		return newImportError(KindUpstreamFetch, msgQuotaExceeded, err)
	case errors.Is(err, youtube.ErrAccessDenied):
		return newImportError(KindUpstreamFetch, msgPlaylistPrivate, err)
	case errors.Is(err, youtube.ErrPlaylistNotFound):
		return newImportError(KindUpstreamFetch, msgPlaylistNotFound, err)
	default:
		return newImportError(KindUpstreamFetch, msgFetchFailed, err)
	}
}

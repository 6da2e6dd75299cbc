package services

import (
	"context"
	"sync"
	"time"

	"github.com/studytube/backend/internal/events"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/repositories"
	"github.com/studytube/backend/internal/youtube"
)

// mockCourseRepository is a mock implementation of CourseRepository
type mockCourseRepository struct {
	counts        []int
	countCalls    int
	countErr      error
	byPlaylist    *models.Course
	byPlaylistErr error
	createErr     error
	createdID     int64
	created       []*models.Course
	course        *models.Course
	getErr        error
	list          []models.CourseListItem
	listErr       error
	deleteErr     error
	deleted       []int64
}

func (m *mockCourseRepository) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	i := min(m.countCalls, len(m.counts)-1)
	m.countCalls++
	if i < 0 {
		return 0, nil
	}
	return m.counts[i], nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	course.ID = m.createdID
	m.created = append(m.created, course)
	return nil
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int64, ownerID string) (*models.Course, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetByPlaylistID(ctx context.Context, ownerID, playlistID string) (*models.Course, error) {
	if m.byPlaylistErr != nil {
		return nil, m.byPlaylistErr
	}
	if m.byPlaylist == nil {
		return nil, repositories.ErrNotFound
	}
	return m.byPlaylist, nil
}

func (m *mockCourseRepository) GetByOwner(ctx context.Context, ownerID string) ([]models.CourseListItem, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.list, nil
}

func (m *mockCourseRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	m.deleted = append(m.deleted, id)
	return m.deleteErr
}

// mockVideoRepository is a mock implementation of VideoRepository
type mockVideoRepository struct {
	inserted  [][]models.Video
	createErr error
	videos    []models.VideoWithProgress
	videosErr error
	exists    bool
	existsErr error
}

func (m *mockVideoRepository) CreateBatch(ctx context.Context, courseID int64, videos []models.Video) (int, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.inserted = append(m.inserted, videos)
	return len(videos), nil
}

func (m *mockVideoRepository) GetByCourseIDWithProgress(ctx context.Context, courseID int64, ownerID string) ([]models.VideoWithProgress, error) {
	if m.videosErr != nil {
		return nil, m.videosErr
	}
	return m.videos, nil
}

func (m *mockVideoRepository) ExistsForOwner(ctx context.Context, ownerID, videoID string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	return m.exists, nil
}

// mockFetcher is a mock implementation of PlaylistFetcher
type mockFetcher struct {
	playlist *youtube.Playlist
	err      error
	calls    int
}

func (m *mockFetcher) FetchPlaylist(ctx context.Context, playlistID string) (*youtube.Playlist, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.playlist, nil
}

// mockPublisher records published events
type mockPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// mockProgressRepository keeps progress in memory the way the database would
type mockProgressRepository struct {
	records       map[string]*models.ProgressRecord
	streak        map[string]int
	err           error
	bookmarks     []models.SavedVideoItem
	notes         []models.SavedVideoItem
	completed     int
	bookmarked    int
	savedNotes    string
	markCalls     int
	bookmarkState bool
}

func newMockProgressRepository() *mockProgressRepository {
	return &mockProgressRepository{
		records: make(map[string]*models.ProgressRecord),
		streak:  make(map[string]int),
	}
}

func (m *mockProgressRepository) MarkCompleted(ctx context.Context, ownerID, videoID string, at time.Time) (bool, error) {
	m.markCalls++
	if m.err != nil {
		return false, m.err
	}
	r, ok := m.records[videoID]
	if ok && r.Completed {
		return false, nil
	}
	if !ok {
		r = &models.ProgressRecord{OwnerID: ownerID, VideoID: videoID}
		m.records[videoID] = r
	}
	completedAt := at
	r.Completed = true
	r.CompletedAt = &completedAt
	m.streak[at.Format(dayLayout)]++
	return true, nil
}

func (m *mockProgressRepository) Get(ctx context.Context, ownerID, videoID string) (*models.ProgressRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.records[videoID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return r, nil
}

func (m *mockProgressRepository) ToggleBookmark(ctx context.Context, ownerID, videoID string, at time.Time) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.bookmarkState = !m.bookmarkState
	return m.bookmarkState, nil
}

func (m *mockProgressRepository) SaveNotes(ctx context.Context, ownerID, videoID, notes string, at time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.savedNotes = notes
	return nil
}

func (m *mockProgressRepository) GetBookmarks(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.bookmarks, nil
}

func (m *mockProgressRepository) GetNotes(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.notes, nil
}

func (m *mockProgressRepository) CountCompleted(ctx context.Context, ownerID string) (int, error) {
	return m.completed, m.err
}

func (m *mockProgressRepository) CountBookmarked(ctx context.Context, ownerID string) (int, error) {
	return m.bookmarked, m.err
}

// mockCheckpointRepository is a mock implementation of CheckpointRepository
type mockCheckpointRepository struct {
	checkpoint *models.PlaybackCheckpoint
	getErr     error
	upsertErr  error
	upserted   []*models.PlaybackCheckpoint
}

func (m *mockCheckpointRepository) Get(ctx context.Context, ownerID, videoID string) (*models.PlaybackCheckpoint, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.checkpoint, nil
}

func (m *mockCheckpointRepository) Upsert(ctx context.Context, checkpoint *models.PlaybackCheckpoint) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upserted = append(m.upserted, checkpoint)
	return nil
}

// mockStreakRepository is a mock implementation of StreakRepository
type mockStreakRepository struct {
	entries []models.StreakEntry
	err     error
	since   time.Time
}

func (m *mockStreakRepository) GetSince(ctx context.Context, ownerID string, since time.Time) ([]models.StreakEntry, error) {
	m.since = since
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

// mockProfileRepository is a mock implementation of ProfileRepository
type mockProfileRepository struct {
	profile   *models.Profile
	getErr    error
	upsertErr error
	saved     *models.Profile
}

func (m *mockProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.saved = profile
	return nil
}

func (m *mockProfileRepository) GetByOwner(ctx context.Context, ownerID string) (*models.Profile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil {
		return nil, repositories.ErrNotFound
	}
	return m.profile, nil
}

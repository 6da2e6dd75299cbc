package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/studytube/backend/internal/events"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/repositories"
	"github.com/studytube/backend/internal/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPlaylistURL = "https://www.youtube.com/playlist?list=PLabcdefghij"

func testPlaylist(videos int) *youtube.Playlist {
	p := &youtube.Playlist{
		ID:        "PLabcdefghij",
		Title:     "Go Course",
		Thumbnail: "https://i.ytimg.com/vi/x/mqdefault.jpg",
	}
	for i := 0; i < videos; i++ {
		p.Videos = append(p.Videos, youtube.Video{
			ID:        fmt.Sprintf("vid%08d", i),
			Title:     fmt.Sprintf("Lesson %d", i+1),
			Thumbnail: youtube.PlaceholderThumbnail,
			Duration:  "4:13",
			Position:  i,
		})
	}
	return p
}

func newTestImportService(fetcher PlaylistFetcher, courses *mockCourseRepository, videos *mockVideoRepository, pub *mockPublisher) *importService {
	svc := NewImportService(fetcher, courses, videos, pub, 4, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestNewImportService(t *testing.T) {
	svc := NewImportService(nil, &mockCourseRepository{}, &mockVideoRepository{}, &mockPublisher{}, 0, zap.NewNop())

	assert.NotNil(t, svc)
	assert.Equal(t, DefaultMaxCourses, svc.maxCourses)
}

func TestImportService_Import_Success(t *testing.T) {
	courses := &mockCourseRepository{counts: []int{1}, createdID: 42}
	videos := &mockVideoRepository{}
	pub := &mockPublisher{}
	fetcher := &mockFetcher{playlist: testPlaylist(2)}
	svc := newTestImportService(fetcher, courses, videos, pub)

	result, err := svc.Import(context.Background(), models.ImportRequest{PlaylistURL: testPlaylistURL, OwnerID: "owner-1"})

	require.NoError(t, err)
	assert.Equal(t, 2, result.VideoCount)
	assert.Equal(t, int64(42), result.Course.ID)
	assert.Equal(t, "PLabcdefghij", result.Course.PlaylistID)
	assert.Equal(t, "Go Course", result.Course.Title)
	assert.Equal(t, 2, result.Course.VideoCount)
	assert.Equal(t, 2, courses.countCalls, "quota is checked before the fetch and again before the insert")

	require.Len(t, videos.inserted, 1)
	inserted := videos.inserted[0]
	require.Len(t, inserted, 2)
	for i, v := range inserted {
		assert.Equal(t, int64(42), v.CourseID)
		assert.Equal(t, i, v.Position)
	}

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.CourseImported, pub.events[0].Type)
	assert.Equal(t, int64(42), pub.events[0].CourseID)
	assert.Equal(t, 2, pub.events[0].VideoCount)
}

func TestImportService_Import_Failures(t *testing.T) {
	tests := []struct {
		name          string
		url           string
		ownerID       string
		nilFetcher    bool
		courses       *mockCourseRepository
		videos        *mockVideoRepository
		fetcher       *mockFetcher
		expectedKind  ImportErrorKind
		expectedMsg   string
		limitReached  bool
		fetchCalls    int
		createdCourse bool
		deleted       []int64
	}{
		{
			name:         "missing configuration",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			nilFetcher:   true,
			courses:      &mockCourseRepository{},
			expectedKind: KindMissingConfiguration,
			expectedMsg:  "YouTube API is not configured on the server. Please contact the administrator.",
		},
		{
			name:         "empty url",
			url:          "  ",
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{},
			expectedKind: KindInvalidURL,
			expectedMsg:  msgMissingInput,
		},
		{
			name:         "url without list marker",
			url:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{},
			expectedKind: KindInvalidURL,
			expectedMsg:  msgInvalidURL,
		},
		{
			name:         "not a youtube url",
			url:          "https://example.com/playlist?list=PLabcdefghij",
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{},
			expectedKind: KindInvalidURL,
			expectedMsg:  msgInvalidURL,
		},
		{
			name:         "limit reached",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{4}},
			expectedKind: KindLimitReached,
			expectedMsg:  "Limit reached. Complete or delete a playlist to import more.",
			limitReached: true,
		},
		{
			name:         "limit check fails",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{countErr: errors.New("database error")},
			expectedKind: KindPersistence,
			expectedMsg:  msgCheckLimitFailed,
		},
		{
			name:         "duplicate playlist",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{1}, byPlaylist: &models.Course{ID: 3, Title: "Go Course"}},
			expectedKind: KindDuplicatePlaylist,
			expectedMsg:  `This playlist "Go Course" has already been imported.`,
		},
		{
			name:         "quota exceeded upstream",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{0}},
			fetcher:      &mockFetcher{err: fmt.Errorf("fetch: %w", youtube.ErrQuotaExceeded)},
			expectedKind: KindUpstreamFetch,
			expectedMsg:  "YouTube API quota exceeded. Please try again in a few minutes.",
			fetchCalls:   1,
		},
		{
			name:         "private playlist",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{0}},
			fetcher:      &mockFetcher{err: fmt.Errorf("fetch: %w", youtube.ErrAccessDenied)},
			expectedKind: KindUpstreamFetch,
			expectedMsg:  "This playlist is private. Please make sure the playlist is public or unlisted.",
			fetchCalls:   1,
		},
		{
			name:         "playlist not found",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{0}},
			fetcher:      &mockFetcher{err: fmt.Errorf("fetch: %w", youtube.ErrPlaylistNotFound)},
			expectedKind: KindUpstreamFetch,
			expectedMsg:  "Playlist not found. Please check the URL and make sure the playlist is public.",
			fetchCalls:   1,
		},
		{
			name:         "network failure",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{0}},
			fetcher:      &mockFetcher{err: fmt.Errorf("fetch: %w", youtube.ErrUpstream)},
			expectedKind: KindUpstreamFetch,
			expectedMsg:  msgFetchFailed,
			fetchCalls:   1,
		},
		{
			name:         "every video unavailable",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{0}},
			fetcher:      &mockFetcher{err: fmt.Errorf("%w: PLabcdefghij", youtube.ErrEmptyPlaylist)},
			expectedKind: KindEmptyPlaylist,
			expectedMsg:  "This playlist appears to be empty or all videos are private/deleted.",
			fetchCalls:   1,
		},
		{
			name:         "fetched playlist without videos",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{0}},
			fetcher:      &mockFetcher{playlist: testPlaylist(0)},
			expectedKind: KindEmptyPlaylist,
			expectedMsg:  msgEmptyPlaylist,
			fetchCalls:   1,
		},
		{
			name:         "limit reached while fetching",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{3, 4}},
			fetcher:      &mockFetcher{playlist: testPlaylist(2)},
			expectedKind: KindLimitReached,
			expectedMsg:  msgLimitReached,
			limitReached: true,
			fetchCalls:   1,
		},
		{
			name:         "duplicate inserted concurrently",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{0}, createErr: fmt.Errorf("course %w", repositories.ErrDuplicate)},
			fetcher:      &mockFetcher{playlist: testPlaylist(2)},
			expectedKind: KindDuplicatePlaylist,
			expectedMsg:  `This playlist "Go Course" has already been imported.`,
			fetchCalls:   1,
		},
		{
			name:         "course insert fails",
			url:          testPlaylistURL,
			ownerID:      "owner-1",
			courses:      &mockCourseRepository{counts: []int{0}, createErr: errors.New("database error")},
			fetcher:      &mockFetcher{playlist: testPlaylist(2)},
			expectedKind: KindPersistence,
			expectedMsg:  msgCreateCourseFailed,
			fetchCalls:   1,
		},
		{
			name:          "video insert fails and course is removed",
			url:           testPlaylistURL,
			ownerID:       "owner-1",
			courses:       &mockCourseRepository{counts: []int{0}, createdID: 42},
			videos:        &mockVideoRepository{createErr: errors.New("database error")},
			fetcher:       &mockFetcher{playlist: testPlaylist(3)},
			expectedKind:  KindPersistence,
			expectedMsg:   msgCreateVideosFailed,
			fetchCalls:    1,
			createdCourse: true,
			deleted:       []int64{42},
		},
		{
			name:          "cleanup failure keeps the original error",
			url:           testPlaylistURL,
			ownerID:       "owner-1",
			courses:       &mockCourseRepository{counts: []int{0}, createdID: 42, deleteErr: errors.New("cleanup error")},
			videos:        &mockVideoRepository{createErr: errors.New("database error")},
			fetcher:       &mockFetcher{playlist: testPlaylist(3)},
			expectedKind:  KindPersistence,
			expectedMsg:   msgCreateVideosFailed,
			fetchCalls:    1,
			createdCourse: true,
			deleted:       []int64{42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			videos := tt.videos
			if videos == nil {
				videos = &mockVideoRepository{}
			}
			fetcher := tt.fetcher
			if fetcher == nil {
				fetcher = &mockFetcher{playlist: testPlaylist(2)}
			}
			pub := &mockPublisher{}

			var svc *importService
			if tt.nilFetcher {
				svc = newTestImportService(nil, tt.courses, videos, pub)
			} else {
				svc = newTestImportService(fetcher, tt.courses, videos, pub)
			}

			result, err := svc.Import(context.Background(), models.ImportRequest{PlaylistURL: tt.url, OwnerID: tt.ownerID})

			assert.Nil(t, result)
			var importErr *ImportError
			require.ErrorAs(t, err, &importErr)
			assert.Equal(t, tt.expectedKind, importErr.Kind)
			assert.Equal(t, tt.expectedMsg, importErr.Message)
			assert.Equal(t, tt.limitReached, importErr.LimitReached)
			assert.Equal(t, tt.fetchCalls, fetcher.calls)
			assert.Equal(t, tt.createdCourse, len(tt.courses.created) > 0)
			assert.Equal(t, tt.deleted, tt.courses.deleted)
			assert.Empty(t, videos.inserted)
			assert.Empty(t, pub.events)
		})
	}
}

func TestImportService_Import_KeepsUpstreamCause(t *testing.T) {
	courses := &mockCourseRepository{counts: []int{0}}
	fetcher := &mockFetcher{err: fmt.Errorf("fetch: %w", youtube.ErrQuotaExceeded)}
	svc := newTestImportService(fetcher, courses, &mockVideoRepository{}, &mockPublisher{})

	_, err := svc.Import(context.Background(), models.ImportRequest{PlaylistURL: testPlaylistURL, OwnerID: "owner-1"})

	assert.ErrorIs(t, err, youtube.ErrQuotaExceeded)
}

func TestImportService_Import_CleanupIgnoresCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	courses := &mockCourseRepository{counts: []int{0}, createdID: 42}
	videos := &mockVideoRepository{createErr: context.Canceled}
	svc := newTestImportService(&mockFetcher{playlist: testPlaylist(1)}, courses, videos, &mockPublisher{})

	cancel()
	_, err := svc.Import(ctx, models.ImportRequest{PlaylistURL: testPlaylistURL, OwnerID: "owner-1"})

	assert.Error(t, err)
	assert.Equal(t, []int64{42}, courses.deleted)
}

func TestImportError_Error(t *testing.T) {
	err := newImportError(KindPersistence, "Database error", errors.New("boom"))
	assert.Equal(t, "persistence: Database error: boom", err.Error())

	err = newImportError(KindLimitReached, "Limit reached", nil)
	assert.Equal(t, "limit_reached: Limit reached", err.Error())
	assert.True(t, err.LimitReached)
}

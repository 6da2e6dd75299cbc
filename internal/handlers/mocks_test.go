package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/studytube/backend/internal/auth"
	"github.com/studytube/backend/internal/middleware"
	"github.com/studytube/backend/internal/models"
	"go.uber.org/zap"
)

var testIdentity = &auth.Identity{OwnerID: "owner-1", Email: "owner@example.com", DisplayName: "Owner"}

type routeRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// serve routes one request through h, authenticated as identity when it is non-nil
func serve(t *testing.T, h routeRegistrar, identity *auth.Identity, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.RegisterRoutes(r)

	req := httptest.NewRequest(method, target, body)
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

var nopLogger = zap.NewNop()

type mockImportService struct {
	result *models.ImportResult
	err    error
	req    models.ImportRequest
	calls  int
}

func (m *mockImportService) Import(ctx context.Context, req models.ImportRequest) (*models.ImportResult, error) {
	m.calls++
	m.req = req
	return m.result, m.err
}

type mockQuotaService struct {
	quota *models.QuotaStatus
	err   error
}

func (m *mockQuotaService) GetQuota(ctx context.Context, ownerID string) (*models.QuotaStatus, error) {
	return m.quota, m.err
}

type mockCourseService struct {
	courses   []models.CourseListItem
	detail    *models.CourseDetailResponse
	err       error
	deletedID int64
}

func (m *mockCourseService) List(ctx context.Context, ownerID string) ([]models.CourseListItem, error) {
	return m.courses, m.err
}

func (m *mockCourseService) GetDetail(ctx context.Context, ownerID string, courseID int64) (*models.CourseDetailResponse, error) {
	return m.detail, m.err
}

func (m *mockCourseService) Delete(ctx context.Context, ownerID string, courseID int64) error {
	m.deletedID = courseID
	return m.err
}

type mockProgressService struct {
	completion *models.CompletionResult
	bookmark   *models.BookmarkResult
	checkpoint *models.PlaybackCheckpoint
	items      []models.SavedVideoItem
	err        error

	videoID  string
	notes    string
	position float64
	duration float64
}

func (m *mockProgressService) MarkCompleted(ctx context.Context, ownerID, videoID string) (*models.CompletionResult, error) {
	m.videoID = videoID
	return m.completion, m.err
}

func (m *mockProgressService) ToggleBookmark(ctx context.Context, ownerID, videoID string) (*models.BookmarkResult, error) {
	m.videoID = videoID
	return m.bookmark, m.err
}

func (m *mockProgressService) SaveNotes(ctx context.Context, ownerID, videoID, notes string) error {
	m.videoID, m.notes = videoID, notes
	return m.err
}

func (m *mockProgressService) GetCheckpoint(ctx context.Context, ownerID, videoID string) (*models.PlaybackCheckpoint, error) {
	m.videoID = videoID
	return m.checkpoint, m.err
}

func (m *mockProgressService) SaveCheckpoint(ctx context.Context, ownerID, videoID string, position, duration float64) error {
	m.videoID, m.position, m.duration = videoID, position, duration
	return m.err
}

func (m *mockProgressService) GetBookmarks(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error) {
	return m.items, m.err
}

func (m *mockProgressService) GetNotes(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error) {
	return m.items, m.err
}

type mockStatsService struct {
	stats    *models.Stats
	calendar []models.CalendarDay
	err      error
}

func (m *mockStatsService) GetStats(ctx context.Context, ownerID string) (*models.Stats, error) {
	return m.stats, m.err
}

func (m *mockStatsService) GetCalendar(ctx context.Context, ownerID string) ([]models.CalendarDay, error) {
	return m.calendar, m.err
}

type mockProfileService struct {
	profile  *models.Profile
	err      error
	identity auth.Identity
	req      models.UpdateProfileRequest
}

func (m *mockProfileService) Update(ctx context.Context, identity auth.Identity, req models.UpdateProfileRequest) (*models.Profile, error) {
	m.identity, m.req = identity, req
	return m.profile, m.err
}

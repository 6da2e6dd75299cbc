package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/services"
	"go.uber.org/zap"
)

// ProgressService is the interface that wraps methods for per-video progress.
//
// Every method taking a video id fails with services.ErrVideoNotFound when the video is not part of
// one of the owner's courses.
type ProgressService interface {
	// Method MarkCompleted marks the video completed and counts it towards today's streak.
	//
	// Completing an already completed video is not an error; the result reports Changed false.
	MarkCompleted(ctx context.Context, ownerID, videoID string) (*models.CompletionResult, error)
	// Method ToggleBookmark flips the bookmark flag of the video and returns the new state.
	ToggleBookmark(ctx context.Context, ownerID, videoID string) (*models.BookmarkResult, error)
	// Method SaveNotes replaces the notes of the video. Empty notes clear them.
	//
	// Notes longer than the stored limit fail with services.ErrNotesTooLong.
	SaveNotes(ctx context.Context, ownerID, videoID, notes string) error
	// Method GetCheckpoint returns the last saved playback position, or "nil" without error if there is none.
	GetCheckpoint(ctx context.Context, ownerID, videoID string) (*models.PlaybackCheckpoint, error)
	// Method SaveCheckpoint stores the playback position of the video.
	//
	// Negative or non-finite values fail with services.ErrInvalidCheckpoint.
	SaveCheckpoint(ctx context.Context, ownerID, videoID string, position, duration float64) error
	// Method GetBookmarks retrieves the owner's bookmarked videos, most recently updated first.
	GetBookmarks(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error)
	// Method GetNotes retrieves the owner's videos with notes, most recently updated first.
	GetNotes(ctx context.Context, ownerID string) ([]models.SavedVideoItem, error)
}

// ProgressHandler handles HTTP requests for video progress, bookmarks, notes and checkpoints
type ProgressHandler struct {
	BaseHandler
	service ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(svc ProgressService, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all progress handler routes
func (h *ProgressHandler) RegisterRoutes(r chi.Router) {
	r.Route("/videos/{videoId}", func(r chi.Router) {
		r.Post("/complete", h.MarkCompleted)
		r.Post("/bookmark", h.ToggleBookmark)
		r.Put("/notes", h.SaveNotes)
		r.Get("/checkpoint", h.GetCheckpoint)
		r.Put("/checkpoint", h.SaveCheckpoint)
	})
	r.Get("/bookmarks", h.GetBookmarks)
	r.Get("/notes", h.GetNotes)
}

// respondVideoError writes the response for a failed per-video operation
func (h *ProgressHandler) respondVideoError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, services.ErrVideoNotFound):
		h.RespondError(w, http.StatusNotFound, "video not found")
	case errors.Is(err, services.ErrInvalidCheckpoint), errors.Is(err, services.ErrNotesTooLong):
		h.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.Logger.Error("failed to "+action, zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to "+action)
	}
}

// MarkCompleted handles POST /api/v1/videos/{videoId}/complete
// @Summary Mark video completed
// @Description Mark a video completed; repeating the call changes nothing
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "YouTube video ID"
// @Success 200 {object} models.CompletionResult
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/videos/{videoId}/complete [post]
func (h *ProgressHandler) MarkCompleted(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	result, err := h.service.MarkCompleted(r.Context(), ownerID, chi.URLParam(r, "videoId"))
	if err != nil {
		h.respondVideoError(w, err, "mark video completed")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// ToggleBookmark handles POST /api/v1/videos/{videoId}/bookmark
// @Summary Toggle bookmark
// @Description Flip the bookmark flag of a video
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "YouTube video ID"
// @Success 200 {object} models.BookmarkResult
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/videos/{videoId}/bookmark [post]
func (h *ProgressHandler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	result, err := h.service.ToggleBookmark(r.Context(), ownerID, chi.URLParam(r, "videoId"))
	if err != nil {
		h.respondVideoError(w, err, "toggle bookmark")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// SaveNotes handles PUT /api/v1/videos/{videoId}/notes
// @Summary Save notes
// @Description Replace the notes of a video
// @Tags progress
// @Accept json
// @Security BearerAuth
// @Param videoId path string true "YouTube video ID"
// @Param request body models.SaveNotesRequest true "Notes"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/videos/{videoId}/notes [put]
func (h *ProgressHandler) SaveNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	var req models.SaveNotesRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SaveNotes(r.Context(), ownerID, chi.URLParam(r, "videoId"), req.Notes); err != nil {
		h.respondVideoError(w, err, "save notes")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCheckpoint handles GET /api/v1/videos/{videoId}/checkpoint
// @Summary Get playback checkpoint
// @Description Get the last saved playback position of a video
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Param videoId path string true "YouTube video ID"
// @Success 200 {object} models.PlaybackCheckpoint
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/videos/{videoId}/checkpoint [get]
func (h *ProgressHandler) GetCheckpoint(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	checkpoint, err := h.service.GetCheckpoint(r.Context(), ownerID, chi.URLParam(r, "videoId"))
	if err != nil {
		h.Logger.Error("failed to get checkpoint", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get checkpoint")
		return
	}
	if checkpoint == nil {
		h.RespondError(w, http.StatusNotFound, "checkpoint not found")
		return
	}

	h.RespondJSON(w, http.StatusOK, checkpoint)
}

// SaveCheckpoint handles PUT /api/v1/videos/{videoId}/checkpoint
// @Summary Save playback checkpoint
// @Description Store the playback position of a video
// @Tags progress
// @Accept json
// @Security BearerAuth
// @Param videoId path string true "YouTube video ID"
// @Param request body models.SaveCheckpointRequest true "Position and duration in seconds"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/videos/{videoId}/checkpoint [put]
func (h *ProgressHandler) SaveCheckpoint(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	var req models.SaveCheckpointRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SaveCheckpoint(r.Context(), ownerID, chi.URLParam(r, "videoId"), req.Position, req.Duration); err != nil {
		h.respondVideoError(w, err, "save checkpoint")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetBookmarks handles GET /api/v1/bookmarks
// @Summary List bookmarks
// @Description Get the authenticated owner's bookmarked videos
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SavedVideoItem
// @Failure 500 {object} map[string]string
// @Router /api/v1/bookmarks [get]
func (h *ProgressHandler) GetBookmarks(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetBookmarks(r.Context(), ownerID)
	if err != nil {
		h.Logger.Error("failed to get bookmarks", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get bookmarks")
		return
	}
	if items == nil {
		items = []models.SavedVideoItem{}
	}

	h.RespondJSON(w, http.StatusOK, items)
}

// GetNotes handles GET /api/v1/notes
// @Summary List notes
// @Description Get the authenticated owner's videos with notes
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SavedVideoItem
// @Failure 500 {object} map[string]string
// @Router /api/v1/notes [get]
func (h *ProgressHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	items, err := h.service.GetNotes(r.Context(), ownerID)
	if err != nil {
		h.Logger.Error("failed to get notes", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get notes")
		return
	}
	if items == nil {
		items = []models.SavedVideoItem{}
	}

	h.RespondJSON(w, http.StatusOK, items)
}

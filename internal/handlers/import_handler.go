package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/services"
	"github.com/studytube/backend/internal/youtube"
	"go.uber.org/zap"
)

// ImportService is the interface that wraps the playlist import business logic.
type ImportService interface {
	// Method Import fetches the playlist behind req.PlaylistURL and stores it as a new course of req.OwnerID.
	//
	// Every failure is returned as *services.ImportError carrying a user-facing message and a kind.
	// Please reference ImportErrorKind constants for the possible kinds.
	Import(ctx context.Context, req models.ImportRequest) (*models.ImportResult, error)
}

// QuotaService is the interface that wraps the course quota lookup.
type QuotaService interface {
	// Method GetQuota returns how many courses the owner holds and how many more may be imported.
	//
	// If some error will occur during data retrieve, the error will be returned together with "nil" value.
	GetQuota(ctx context.Context, ownerID string) (*models.QuotaStatus, error)
}

// ImportHandler handles HTTP requests for playlist imports
type ImportHandler struct {
	BaseHandler
	importService ImportService
	quotaService  QuotaService
}

// NewImportHandler creates a new import handler
func NewImportHandler(importSvc ImportService, quotaSvc QuotaService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		importService: importSvc,
		quotaService:  quotaSvc,
	}
}

// RegisterRoutes registers all import handler routes
func (h *ImportHandler) RegisterRoutes(r chi.Router) {
	r.Post("/import", h.Import)
	r.Get("/quota", h.GetQuota)
}

// Import handles POST /api/v1/import
// @Summary Import a playlist
// @Description Import a YouTube playlist as a new course of the authenticated owner
// @Tags import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ImportRequest true "Playlist URL"
// @Success 201 {object} models.ImportResponse
// @Failure 400 {object} models.ImportResponse
// @Failure 403 {object} models.ImportResponse
// @Failure 409 {object} models.ImportResponse
// @Failure 429 {object} models.ImportResponse
// @Failure 500 {object} models.ImportResponse
// @Failure 502 {object} models.ImportResponse
// @Router /api/v1/import [post]
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	var req models.ImportRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondJSON(w, http.StatusBadRequest, models.ImportResponse{Error: err.Error()})
		return
	}
	if req.OwnerID != "" && req.OwnerID != ownerID {
		h.RespondJSON(w, http.StatusForbidden, models.ImportResponse{Error: "ownerId does not match the authenticated user"})
		return
	}
	req.OwnerID = ownerID

	result, err := h.importService.Import(r.Context(), req)
	if err != nil {
		var importErr *services.ImportError
		if !errors.As(err, &importErr) {
			h.Logger.Error("unexpected import failure", zap.Error(err))
			h.RespondJSON(w, http.StatusInternalServerError, models.ImportResponse{Error: "failed to import playlist"})
			return
		}
		h.RespondJSON(w, importStatus(importErr), models.ImportResponse{
			Error:        importErr.Message,
			LimitReached: importErr.LimitReached,
		})
		return
	}

	h.RespondJSON(w, http.StatusCreated, models.ImportResponse{
		Success:    true,
		Course:     result.Course,
		VideoCount: result.VideoCount,
		Message:    "Playlist imported successfully",
	})
}

// importStatus maps an import failure onto an HTTP status
func importStatus(err *services.ImportError) int {
	switch err.Kind {
	case services.KindInvalidURL, services.KindLimitReached, services.KindEmptyPlaylist:
		return http.StatusBadRequest
	case services.KindDuplicatePlaylist:
		return http.StatusConflict
	case services.KindUpstreamFetch:
		switch {
		case errors.Is(err, youtube.ErrQuotaExceeded):
			return http.StatusTooManyRequests
		case errors.Is(err, youtube.ErrAccessDenied):
			return http.StatusForbidden
		case errors.Is(err, youtube.ErrPlaylistNotFound):
			return http.StatusNotFound
		default:
			return http.StatusBadGateway
		}
	default:
		return http.StatusInternalServerError
	}
}

// GetQuota handles GET /api/v1/quota
// @Summary Get import quota
// @Description Get how many more courses the authenticated owner may import
// @Tags import
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.QuotaStatus
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/quota [get]
func (h *ImportHandler) GetQuota(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	quota, err := h.quotaService.GetQuota(r.Context(), ownerID)
	if err != nil {
		h.Logger.Error("failed to get quota", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get quota")
		return
	}

	h.RespondJSON(w, http.StatusOK, quota)
}

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studytube/backend/internal/auth"
	"github.com/studytube/backend/internal/middleware"
	"github.com/studytube/backend/internal/models"
	"github.com/studytube/backend/internal/services"
	"go.uber.org/zap"
)

// StatsService is the interface that wraps the dashboard aggregations.
type StatsService interface {
	// Method GetStats returns watched, bookmarked and course counts together with the active streak.
	GetStats(ctx context.Context, ownerID string) (*models.Stats, error)
	// Method GetCalendar returns one cell per day of the current year up to today.
	GetCalendar(ctx context.Context, ownerID string) ([]models.CalendarDay, error)
}

// ProfileService is the interface that wraps profile updates.
type ProfileService interface {
	// Method Update stores the caller's profile. Empty fields fall back to the token claims.
	//
	// An unparsable email fails with services.ErrInvalidEmail.
	Update(ctx context.Context, identity auth.Identity, req models.UpdateProfileRequest) (*models.Profile, error)
}

// StatsHandler handles HTTP requests for dashboard statistics and the caller's profile
type StatsHandler struct {
	BaseHandler
	stats   StatsService
	profile ProfileService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(stats StatsService, profile ProfileService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler: BaseHandler{Logger: logger},
		stats:       stats,
		profile:     profile,
	}
}

// RegisterRoutes registers all stats handler routes
func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.GetStats)
	r.Get("/stats/calendar", h.GetCalendar)
	r.Put("/profile", h.UpdateProfile)
}

// GetStats handles GET /api/v1/stats
// @Summary Get dashboard stats
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.GetStats(r.Context(), ownerID)
	if err != nil {
		h.Logger.Error("failed to get stats", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}

// GetCalendar handles GET /api/v1/stats/calendar
// @Summary Get streak calendar
// @Description Get per-day watch counts and intensity levels for the current year
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CalendarDay
// @Failure 500 {object} map[string]string
// @Router /api/v1/stats/calendar [get]
func (h *StatsHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	days, err := h.stats.GetCalendar(r.Context(), ownerID)
	if err != nil {
		h.Logger.Error("failed to get calendar", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get calendar")
		return
	}

	h.RespondJSON(w, http.StatusOK, days)
}

// UpdateProfile handles PUT /api/v1/profile
// @Summary Update profile
// @Description Store the e-mail, display name and reminder preference of the authenticated owner
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/profile [put]
func (h *StatsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "owner ID not found in context")
		return
	}

	var req models.UpdateProfileRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.profile.Update(r.Context(), *identity, req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidEmail) {
			h.RespondError(w, http.StatusBadRequest, "invalid email")
			return
		}
		h.Logger.Error("failed to update profile", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}

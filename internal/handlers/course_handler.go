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

// CourseService is the interface that wraps methods for course business logic.
type CourseService interface {
	// Method List retrieves the owner's courses, newest first, with completion counts.
	List(ctx context.Context, ownerID string) ([]models.CourseListItem, error)
	// Method GetDetail retrieves a course with its videos in playlist order and the owner's progress on them.
	//
	// If the course does not exist or belongs to another owner, services.ErrCourseNotFound is returned.
	GetDetail(ctx context.Context, ownerID string, courseID int64) (*models.CourseDetailResponse, error)
	// Method Delete removes a course and its videos, freeing one quota slot.
	//
	// Please reference GetDetail method for the not found error.
	Delete(ctx context.Context, ownerID string, courseID int64) error
}

// CourseHandler handles HTTP requests for courses
type CourseHandler struct {
	BaseHandler
	service CourseService
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(svc CourseService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all course handler routes
func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Route("/courses", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.GetDetail)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /api/v1/courses
// @Summary List courses
// @Description Get the authenticated owner's courses with completion counts
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CourseListItem
// @Failure 500 {object} map[string]string
// @Router /api/v1/courses [get]
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}

	courses, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		h.Logger.Error("failed to list courses", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get courses")
		return
	}
	if courses == nil {
		courses = []models.CourseListItem{}
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetDetail handles GET /api/v1/courses/{id}
// @Summary Get course
// @Description Get a course with its videos and the owner's progress
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} models.CourseDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/courses/{id} [get]
func (h *CourseHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}
	courseID, err := int64Param(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	detail, err := h.service.GetDetail(r.Context(), ownerID, courseID)
	if err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			h.RespondError(w, http.StatusNotFound, "course not found")
			return
		}
		h.Logger.Error("failed to get course", zap.Int64("course_id", courseID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to get course")
		return
	}

	h.RespondJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /api/v1/courses/{id}
// @Summary Delete course
// @Description Delete a course and its videos
// @Tags courses
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/courses/{id} [delete]
func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := h.OwnerID(w, r)
	if !ok {
		return
	}
	courseID, err := int64Param(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, courseID); err != nil {
		if errors.Is(err, services.ErrCourseNotFound) {
			h.RespondError(w, http.StatusNotFound, "course not found")
			return
		}
		h.Logger.Error("failed to delete course", zap.Int64("course_id", courseID), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

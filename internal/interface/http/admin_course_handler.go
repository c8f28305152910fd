package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/internal/application"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/pkg/response"
	"github.com/bilguun-dev/courseware-api/pkg/validation"
)

type AdminCourseHandler struct {
	Svc    *application.CourseService
	Logger *logrus.Logger
}

func NewAdminCourseHandler(svc *application.CourseService, logger *logrus.Logger) *AdminCourseHandler {
	return &AdminCourseHandler{Svc: svc, Logger: logger}
}

type courseRequest struct {
	Title               string     `json:"title" binding:"required"`
	Description         string     `json:"description"`
	Category            string     `json:"category"`
	Price               int64      `json:"price" binding:"min=0"`
	FakeEnrollmentBonus int        `json:"fake_enrollment_bonus" binding:"min=0"`
	DiscountPercent     int        `json:"discount_percent" binding:"min=0,max=100"`
	DiscountEndAt       *time.Time `json:"discount_end_at"`
	IsPublished         bool       `json:"is_published"`
	ThumbnailURL        string     `json:"thumbnail_url"`
}

func (r courseRequest) input() application.CourseInput {
	return application.CourseInput{
		Title:               r.Title,
		Description:         r.Description,
		Category:            r.Category,
		Price:               r.Price,
		FakeEnrollmentBonus: r.FakeEnrollmentBonus,
		DiscountPercent:     r.DiscountPercent,
		DiscountEndAt:       r.DiscountEndAt,
		IsPublished:         r.IsPublished,
		ThumbnailURL:        r.ThumbnailURL,
	}
}

type courseView struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	Slug                string     `json:"slug"`
	Description         string     `json:"description"`
	Category            string     `json:"category,omitempty"`
	Price               int64      `json:"price"`
	FakeEnrollmentBonus int        `json:"fake_enrollment_bonus"`
	DiscountPercent     int        `json:"discount_percent"`
	DiscountEndAt       *time.Time `json:"discount_end_at,omitempty"`
	IsPublished         bool       `json:"is_published"`
	ThumbnailURL        string     `json:"thumbnail_url,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func toCourseView(c *entity.Course) courseView {
	return courseView{
		ID:                  c.ID,
		Title:               c.Title,
		Slug:                c.Slug,
		Description:         c.Description,
		Category:            c.Category,
		Price:               c.Price,
		FakeEnrollmentBonus: c.FakeEnrollmentBonus,
		DiscountPercent:     c.DiscountPercent,
		DiscountEndAt:       c.DiscountEndAt,
		IsPublished:         c.IsPublished,
		ThumbnailURL:        c.ThumbnailURL,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func (h *AdminCourseHandler) Create(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Svc.CreateCourse(c.Request.Context(), req.input())
	if err != nil {
		if errors.Is(err, application.ErrSlugTaken) {
			response.Error[any](c, http.StatusConflict, "a course with this title already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("create course failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create course", nil)
		return
	}
	response.Success(c, http.StatusCreated, toCourseView(course), "course created", nil)
}

func (h *AdminCourseHandler) Update(c *gin.Context) {
	var req courseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	course, err := h.Svc.UpdateCourse(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update course failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update course", nil)
		return
	}
	response.Success(c, http.StatusOK, toCourseView(course), "course updated", nil)
}

func (h *AdminCourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteCourse(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete course failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to delete course", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "course deleted", nil)
}

// List includes unpublished drafts; this route sits behind the admin gate.
func (h *AdminCourseHandler) List(c *gin.Context) {
	courses, err := h.Svc.ListCourses(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list courses failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load courses", nil)
		return
	}
	out := make([]courseView, 0, len(courses))
	for _, course := range courses {
		out = append(out, toCourseView(course))
	}
	response.Success(c, http.StatusOK, out, "courses", map[string]any{"count": len(out)})
}

func (h *AdminCourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.GetCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("get course failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load course", nil)
		return
	}
	response.Success(c, http.StatusOK, toCourseView(course), "course", nil)
}

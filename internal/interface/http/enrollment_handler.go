package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/internal/application"
	"github.com/bilguun-dev/courseware-api/internal/interface/middleware"
	"github.com/bilguun-dev/courseware-api/pkg/response"
	"github.com/bilguun-dev/courseware-api/pkg/validation"
)

type EnrollmentHandler struct {
	Svc    *application.EnrollmentService
	Logger *logrus.Logger
}

func NewEnrollmentHandler(svc *application.EnrollmentService, logger *logrus.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{Svc: svc, Logger: logger}
}

type enrollRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
}

// Enroll is idempotent: re-enrolling in an owned course returns the same
// success as the first call.
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	err := h.Svc.Enroll(c.Request.Context(), middleware.Viewer(c), req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUnauthenticated):
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
		case errors.Is(err, application.ErrNotFound):
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
		default:
			h.Logger.WithError(err).Error("enroll failed")
			response.Error[any](c, http.StatusInternalServerError, "enrollment failed", nil)
		}
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"enrolled": true}, "enrolled", nil)
}

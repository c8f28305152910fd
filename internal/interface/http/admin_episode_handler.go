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

type AdminEpisodeHandler struct {
	Svc    *application.CourseService
	Logger *logrus.Logger
}

func NewAdminEpisodeHandler(svc *application.CourseService, logger *logrus.Logger) *AdminEpisodeHandler {
	return &AdminEpisodeHandler{Svc: svc, Logger: logger}
}

type episodeRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Position      int    `json:"position" binding:"min=0"`
	IsFreePreview bool   `json:"is_free_preview"`
	VideoURL      string `json:"video_url"`
	ThumbnailURL  string `json:"thumbnail_url"`
}

func (r episodeRequest) input() application.EpisodeInput {
	return application.EpisodeInput{
		Title:         r.Title,
		Description:   r.Description,
		Position:      r.Position,
		IsFreePreview: r.IsFreePreview,
		VideoURL:      r.VideoURL,
		ThumbnailURL:  r.ThumbnailURL,
	}
}

type episodeView struct {
	ID            string    `json:"id"`
	CourseID      string    `json:"course_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Position      int       `json:"position"`
	IsFreePreview bool      `json:"is_free_preview"`
	VideoURL      string    `json:"video_url,omitempty"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toEpisodeView(e *entity.Episode) episodeView {
	return episodeView{
		ID:            e.ID,
		CourseID:      e.CourseID,
		Title:         e.Title,
		Description:   e.Description,
		Position:      e.Position,
		IsFreePreview: e.IsFreePreview,
		VideoURL:      e.VideoURL,
		ThumbnailURL:  e.ThumbnailURL,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func (h *AdminEpisodeHandler) Create(c *gin.Context) {
	var req episodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ep, err := h.Svc.CreateEpisode(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("create episode failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to create episode", nil)
		return
	}
	response.Success(c, http.StatusCreated, toEpisodeView(ep), "episode created", nil)
}

func (h *AdminEpisodeHandler) Update(c *gin.Context) {
	var req episodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ep, err := h.Svc.UpdateEpisode(c.Request.Context(), c.Param("episodeID"), req.input())
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "episode not found", nil)
			return
		}
		h.Logger.WithError(err).Error("update episode failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to update episode", nil)
		return
	}
	response.Success(c, http.StatusOK, toEpisodeView(ep), "episode updated", nil)
}

func (h *AdminEpisodeHandler) Delete(c *gin.Context) {
	if err := h.Svc.DeleteEpisode(c.Request.Context(), c.Param("episodeID")); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "episode not found", nil)
			return
		}
		h.Logger.WithError(err).Error("delete episode failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to delete episode", nil)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "episode deleted", nil)
}

func (h *AdminEpisodeHandler) List(c *gin.Context) {
	eps, err := h.Svc.ListEpisodes(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("list episodes failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load episodes", nil)
		return
	}
	out := make([]episodeView, 0, len(eps))
	for _, ep := range eps {
		out = append(out, toEpisodeView(ep))
	}
	response.Success(c, http.StatusOK, out, "episodes", map[string]any{"count": len(out)})
}

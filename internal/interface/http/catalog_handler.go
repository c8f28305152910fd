package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/internal/application"
	"github.com/bilguun-dev/courseware-api/internal/interface/middleware"
	"github.com/bilguun-dev/courseware-api/pkg/response"
)

type CatalogHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewCatalogHandler(svc *application.CatalogService, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{Svc: svc, Logger: logger}
}

func (h *CatalogHandler) List(c *gin.Context) {
	cards, err := h.Svc.ListPublished(c.Request.Context(), strings.TrimSpace(c.Query("category")))
	if err != nil {
		h.Logger.WithError(err).Error("catalog list failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load courses", nil)
		return
	}
	response.Success(c, http.StatusOK, cards, "courses", map[string]any{"count": len(cards)})
}

// Detail renders the course page for whoever is asking. Hidden courses are
// indistinguishable from missing ones.
func (h *CatalogHandler) Detail(c *gin.Context) {
	detail, err := h.Svc.GetCourse(c.Request.Context(), middleware.Viewer(c), c.Param("slug"), c.Query("episode_id"))
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			response.Error[any](c, http.StatusNotFound, "course not found", nil)
			return
		}
		h.Logger.WithError(err).Error("course detail failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load course", nil)
		return
	}
	response.Success(c, http.StatusOK, detail, "course", nil)
}

func (h *CatalogHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("course search failed")
		response.Error[any](c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/internal/application"
	"github.com/bilguun-dev/courseware-api/pkg/response"
)

const maxUploadBytes = 512 << 20

type UploadHandler struct {
	Svc    *application.CourseService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.CourseService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

// Upload relays a multipart file to object storage and returns its public
// URL. Storage failures map to 502: the request was fine, the backend was
// not.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing file field", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadMedia(c.Request.Context(), f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.Logger.WithError(err).WithField("filename", fh.Filename).Error("media upload failed")
		response.Error[any](c, http.StatusBadGateway, "upload failed", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "uploaded", nil)
}

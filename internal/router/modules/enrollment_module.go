package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bilguun-dev/courseware-api/internal/container"
	handlers "github.com/bilguun-dev/courseware-api/internal/interface/http"
	"github.com/bilguun-dev/courseware-api/internal/interface/middleware"
	"github.com/bilguun-dev/courseware-api/pkg/helpers"
)

// EnrollmentModule wires POST /api/enrollments. Enrollment requires a login;
// anonymous requests get 401 before the service runs.
type EnrollmentModule struct {
	Handler *handlers.EnrollmentHandler
	JWT     *helpers.JWTManager
}

func NewEnrollmentModule(h *handlers.EnrollmentHandler, jwt *helpers.JWTManager) *EnrollmentModule {
	return &EnrollmentModule{Handler: h, JWT: jwt}
}

func (m *EnrollmentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/enrollments", m.Handler.Enroll)
	}
}

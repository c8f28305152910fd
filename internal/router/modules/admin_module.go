package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bilguun-dev/courseware-api/internal/container"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	handlers "github.com/bilguun-dev/courseware-api/internal/interface/http"
	"github.com/bilguun-dev/courseware-api/internal/interface/middleware"
	"github.com/bilguun-dev/courseware-api/pkg/helpers"
)

// AdminModule wires the /api/admin subtree. Every route sits behind Auth plus
// the ADMIN role gate; a student hitting any of them gets 403 with no hint of
// what exists underneath.
type AdminModule struct {
	Courses  *handlers.AdminCourseHandler
	Episodes *handlers.AdminEpisodeHandler
	Users    *handlers.AdminUserHandler
	Uploads  *handlers.UploadHandler
	JWT      *helpers.JWTManager
}

func NewAdminModule(courses *handlers.AdminCourseHandler, episodes *handlers.AdminEpisodeHandler, users *handlers.AdminUserHandler, uploads *handlers.UploadHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Courses: courses, Episodes: episodes, Users: users, Uploads: uploads, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(
		middleware.Auth(container.GetRedis(), m.JWT),
		middleware.RequireRole(entity.RoleAdmin),
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()),
	)
	{
		admin.GET("/courses", m.Courses.List)
		admin.POST("/courses", m.Courses.Create)
		admin.GET("/courses/:id", m.Courses.Get)
		admin.PUT("/courses/:id", m.Courses.Update)
		admin.DELETE("/courses/:id", m.Courses.Delete)

		admin.GET("/courses/:id/episodes", m.Episodes.List)
		admin.POST("/courses/:id/episodes", m.Episodes.Create)
		admin.PUT("/episodes/:episodeID", m.Episodes.Update)
		admin.DELETE("/episodes/:episodeID", m.Episodes.Delete)

		admin.GET("/users", m.Users.List)

		admin.POST("/uploads", m.Uploads.Upload)
	}
}

package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bilguun-dev/courseware-api/internal/container"
	handlers "github.com/bilguun-dev/courseware-api/internal/interface/http"
	"github.com/bilguun-dev/courseware-api/internal/interface/middleware"
	"github.com/bilguun-dev/courseware-api/pkg/helpers"
)

// CatalogModule wires the public course pages. OptionalAuth rather than Auth:
// the same routes serve visitors and logged-in students, with per-episode
// access decided downstream.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
	JWT     *helpers.JWTManager
}

func NewCatalogModule(h *handlers.CatalogHandler, jwt *helpers.JWTManager) *CatalogModule {
	return &CatalogModule{Handler: h, JWT: jwt}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	courses := rg.Group("/courses")
	courses.Use(middleware.OptionalAuth(container.GetRedis(), m.JWT), limiter)
	{
		courses.GET("", m.Handler.List)
		courses.GET("/search", searchLimiter, m.Handler.Search)
		courses.GET("/:slug", m.Handler.Detail)
	}
}

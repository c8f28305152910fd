package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/pkg/response"
)

// RequireRole gates a route group on the viewer's role. It must run after
// Auth. A logged-in viewer with the wrong role gets 403; the gate never
// reveals whether a specific resource exists.
func RequireRole(role entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := Viewer(c)
		if v == nil {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		if v.Role != role {
			response.Error[any](c, http.StatusForbidden, "insufficient permissions", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/bilguun-dev/courseware-api/internal/domain/access"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/pkg/helpers"
	"github.com/bilguun-dev/courseware-api/pkg/response"
)

const ctxViewerKey = "viewer"

// Viewer returns the resolved viewer for this request, or nil for an
// anonymous visitor.
func Viewer(c *gin.Context) *access.Viewer {
	if v, ok := c.Get(ctxViewerKey); ok {
		if viewer, ok := v.(*access.Viewer); ok {
			return viewer
		}
	}
	return nil
}

func resolveViewer(c *gin.Context, rdb *redis.Client, jwt *helpers.JWTManager) *access.Viewer {
	token, err := c.Cookie("access_token")
	if err != nil || token == "" {
		return nil
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return nil
	}
	// Require a live session whose id matches the token's.
	key := "user:session:" + claims.UserID
	data, err := rdb.HGetAll(c.Request.Context(), key).Result()
	if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
		return nil
	}
	c.Set("userID", claims.UserID)
	c.Set("userName", data["name"])
	c.Set("userEmail", data["email"])
	return &access.Viewer{UserID: claims.UserID, Role: entity.Role(claims.Role)}
}

// Auth requires a valid access token backed by an active Redis session and
// stores the resolved viewer in the Gin context.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := resolveViewer(c, rdb, jwt)
		if v == nil {
			response.Error[any](c, http.StatusUnauthorized, "authentication required", nil)
			c.Abort()
			return
		}
		c.Set(ctxViewerKey, v)
		c.Next()
	}
}

// OptionalAuth resolves the viewer when credentials are present but lets
// anonymous requests through. Public catalog pages use this: the same page
// renders for visitors, students, and admins, with access decided per
// episode downstream.
func OptionalAuth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := resolveViewer(c, rdb, jwt); v != nil {
			c.Set(ctxViewerKey, v)
		}
		c.Next()
	}
}

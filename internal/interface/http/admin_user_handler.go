package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/internal/application"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/pkg/response"
)

type AdminUserHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAdminUserHandler(svc *application.AuthService, logger *logrus.Logger) *AdminUserHandler {
	return &AdminUserHandler{Svc: svc, Logger: logger}
}

// userView carries only the account fields safe to show in the admin
// dashboard. Password hashes and reset tokens never leave the service layer.
type userView struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserView(u *entity.User) userView {
	return userView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// List returns every account newest first, with role totals in the meta so
// the dashboard can render its stat cards without a second request.
func (h *AdminUserHandler) List(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("list users failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to load users", nil)
		return
	}
	out := make([]userView, 0, len(users))
	admins := 0
	for _, u := range users {
		out = append(out, toUserView(u))
		if u.Role == entity.RoleAdmin {
			admins++
		}
	}
	response.Success(c, http.StatusOK, out, "users", map[string]any{
		"count":    len(out),
		"admins":   admins,
		"students": len(out) - admins,
	})
}

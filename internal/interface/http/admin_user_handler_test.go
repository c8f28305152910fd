package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilguun-dev/courseware-api/config"
	"github.com/bilguun-dev/courseware-api/internal/application"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
)

func newAdminUserRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	svc := application.NewAuthService(users, nil, nil, nil, &config.Config{}, newTestLogger())
	h := NewAdminUserHandler(svc, newTestLogger())

	r := gin.New()
	r.GET("/api/admin/users", h.List)
	return r, users
}

func seedUser(t *testing.T, users *memUserRepo, email string, role entity.Role) {
	t.Helper()
	require.NoError(t, users.Create(context.Background(), &entity.User{
		Email:        email,
		PasswordHash: "$2a$10$notarealhash",
		Name:         "Someone",
		Role:         role,
	}))
}

func TestAdminListUsers(t *testing.T) {
	r, users := newAdminUserRouter(t)
	seedUser(t, users, "admin@example.com", entity.RoleAdmin)
	seedUser(t, users, "alice@example.com", entity.RoleStudent)
	seedUser(t, users, "bob@example.com", entity.RoleStudent)

	w := get(r, "/api/admin/users")
	require.Equal(t, http.StatusOK, w.Code)

	var e struct {
		Success bool `json:"success"`
		Data    []struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"data"`
		Meta map[string]any `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	assert.True(t, e.Success)
	require.Len(t, e.Data, 3)
	assert.Equal(t, float64(3), e.Meta["count"])
	assert.Equal(t, float64(1), e.Meta["admins"])
	assert.Equal(t, float64(2), e.Meta["students"])
}

// Credential material stays out of the admin listing.
func TestAdminListUsersOmitsSecrets(t *testing.T) {
	r, users := newAdminUserRouter(t)
	seedUser(t, users, "alice@example.com", entity.RoleStudent)
	tok := "reset-tok-123"
	u, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, users.SetResetToken(context.Background(), u.ID, tok, u.CreatedAt.Add(time.Hour)))

	w := get(r, "/api/admin/users")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.NotContains(t, body, "$2a$10$notarealhash")
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, tok)
}

func TestAdminListUsersEmpty(t *testing.T) {
	r, _ := newAdminUserRouter(t)
	w := get(r, "/api/admin/users")
	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEnvelope(t, w)
	assert.True(t, e.Success)
}

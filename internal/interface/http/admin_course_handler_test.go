package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilguun-dev/courseware-api/internal/application"
)

func newAdminRouter(t *testing.T) (*gin.Engine, *memCourseRepo) {
	t.Helper()
	courses := newMemCourseRepo()
	episodes := newMemEpisodeRepo()
	svc := application.NewCourseService(courses, episodes, nil, "", nil, "", newTestLogger())
	ch := NewAdminCourseHandler(svc, newTestLogger())
	eh := NewAdminEpisodeHandler(svc, newTestLogger())

	r := gin.New()
	r.GET("/api/admin/courses", ch.List)
	r.POST("/api/admin/courses", ch.Create)
	r.PUT("/api/admin/courses/:id", ch.Update)
	r.POST("/api/admin/courses/:id/episodes", eh.Create)
	return r, courses
}

func TestAdminCreateCourseDerivesSlug(t *testing.T) {
	r, _ := newAdminRouter(t)
	w := postJSON(r, "/api/admin/courses", gin.H{"title": "Complete Web Development!", "price": 100000})
	require.Equal(t, http.StatusCreated, w.Code)
	e := decodeEnvelope(t, w)
	assert.Equal(t, "complete-web-development", e.Data["slug"])
}

func TestAdminCreateCourseDuplicateTitle(t *testing.T) {
	r, _ := newAdminRouter(t)
	w := postJSON(r, "/api/admin/courses", gin.H{"title": "Go Basics", "price": 0})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(r, "/api/admin/courses", gin.H{"title": "Go Basics", "price": 0})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAdminCreateCourseRejectsBadDiscount(t *testing.T) {
	r, _ := newAdminRouter(t)
	w := postJSON(r, "/api/admin/courses", gin.H{"title": "Go Basics", "price": 100, "discount_percent": 120})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminUpdateKeepsSlug(t *testing.T) {
	r, _ := newAdminRouter(t)
	w := postJSON(r, "/api/admin/courses", gin.H{"title": "Go Basics", "price": 100})
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeEnvelope(t, w).Data["id"].(string)

	w = putJSON(r, "/api/admin/courses/"+id, gin.H{"title": "Go Basics, Second Edition", "price": 100})
	require.Equal(t, http.StatusOK, w.Code)
	e := decodeEnvelope(t, w)
	assert.Equal(t, "Go Basics, Second Edition", e.Data["title"])
	assert.Equal(t, "go-basics", e.Data["slug"])
}

func TestAdminCreateEpisodeUnknownCourse(t *testing.T) {
	r, _ := newAdminRouter(t)
	w := postJSON(r, "/api/admin/courses/missing/episodes", gin.H{"title": "Intro", "position": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

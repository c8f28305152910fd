package handlers

import (
	"context"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
)

func newTestLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// In-memory repositories with the same constraint semantics as the Postgres
// implementations, enough to drive handlers end to end over httptest.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if e.Email == u.Email {
			return repository.ErrConflict
		}
	}
	r.seq++
	u.ID = "user-" + strconv.Itoa(r.seq)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) SetResetToken(_ context.Context, userID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.ResetToken = &token
	u.ResetTokenExpiresAt = &expiresAt
	return nil
}

func (r *memUserRepo) GetByResetToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) UpdatePasswordAndClearReset(_ context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = nil
	u.ResetTokenExpiresAt = nil
	return nil
}

func (r *memUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type memCourseRepo struct {
	mu      sync.Mutex
	seq     int
	courses map[string]*entity.Course
}

func newMemCourseRepo() *memCourseRepo {
	return &memCourseRepo{courses: map[string]*entity.Course{}}
}

func (r *memCourseRepo) Create(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.courses {
		if e.Slug == c.Slug {
			return repository.ErrConflict
		}
	}
	r.seq++
	c.ID = "course-" + strconv.Itoa(r.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *memCourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memCourseRepo) GetBySlug(_ context.Context, slug string) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCourseRepo) Update(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.courses[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	slug := stored.Slug
	cp := *c
	cp.Slug = slug
	cp.UpdatedAt = time.Now()
	r.courses[c.ID] = &cp
	return nil
}

func (r *memCourseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *memCourseRepo) ListPublished(_ context.Context, category string) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Course, 0)
	for _, c := range r.courses {
		if c.IsPublished && (category == "" || c.Category == category) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCourseRepo) ListAll(_ context.Context) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Course, 0, len(r.courses))
	for _, c := range r.courses {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type memEpisodeRepo struct {
	mu       sync.Mutex
	seq      int
	episodes map[string]*entity.Episode
}

func newMemEpisodeRepo() *memEpisodeRepo {
	return &memEpisodeRepo{episodes: map[string]*entity.Episode{}}
}

func (r *memEpisodeRepo) Create(_ context.Context, e *entity.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	e.ID = "ep-" + strconv.Itoa(r.seq)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	r.episodes[e.ID] = &cp
	return nil
}

func (r *memEpisodeRepo) GetByID(_ context.Context, id string) (*entity.Episode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.episodes[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *memEpisodeRepo) Update(_ context.Context, e *entity.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.episodes[e.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *e
	cp.UpdatedAt = time.Now()
	r.episodes[e.ID] = &cp
	return nil
}

func (r *memEpisodeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.episodes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.episodes, id)
	return nil
}

func (r *memEpisodeRepo) ListByCourse(_ context.Context, courseID string) ([]*entity.Episode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Episode, 0)
	for _, e := range r.episodes {
		if e.CourseID == courseID {
			cp := *e
			out = append(out, &cp)
		}
	}
	// ordered by position, creation as tie-break
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if a.Position > b.Position || (a.Position == b.Position && a.CreatedAt.After(b.CreatedAt)) {
				out[j-1], out[j] = b, a
			}
		}
	}
	return out, nil
}

type memEnrollmentRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Enrollment
}

func newMemEnrollmentRepo() *memEnrollmentRepo {
	return &memEnrollmentRepo{rows: map[string]*entity.Enrollment{}}
}

func enrollmentKey(userID, courseID string) string {
	return userID + "|" + courseID
}

func (r *memEnrollmentRepo) CreateIfAbsent(_ context.Context, e *entity.Enrollment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := enrollmentKey(e.UserID, e.CourseID)
	if _, ok := r.rows[key]; ok {
		return false, nil
	}
	e.CreatedAt = time.Now()
	cp := *e
	r.rows[key] = &cp
	return true, nil
}

func (r *memEnrollmentRepo) Exists(_ context.Context, userID, courseID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[enrollmentKey(userID, courseID)]
	return ok, nil
}

func (r *memEnrollmentRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, e := range r.rows {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

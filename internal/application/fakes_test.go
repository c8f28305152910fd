package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
)

// In-memory repositories mirroring the Postgres constraint semantics:
// unique email, unique slug, unique (user, course) enrollment pair.

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) nextID() string {
	r.seq++
	return fmt.Sprintf("user-%d", r.seq)
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return repository.ErrConflict
		}
	}
	u.ID = r.nextID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
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

func (r *fakeUserRepo) SetResetToken(_ context.Context, userID, token string, expiresAt time.Time) error {
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

func (r *fakeUserRepo) GetByResetToken(_ context.Context, token string) (*entity.User, error) {
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

func (r *fakeUserRepo) UpdatePasswordAndClearReset(_ context.Context, userID, passwordHash string) error {
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

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	seq     int
	courses map[string]*entity.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[string]*entity.Course{}}
}

func (r *fakeCourseRepo) Create(_ context.Context, c *entity.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.courses {
		if ex.Slug == c.Slug {
			return repository.ErrConflict
		}
	}
	r.seq++
	c.ID = fmt.Sprintf("course-%d", r.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.courses[c.ID] = &cp
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.courses[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeCourseRepo) GetBySlug(_ context.Context, slug string) (*entity.Course, error) {
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

// Update mirrors the SQL statement: every mutable column except the slug.
func (r *fakeCourseRepo) Update(_ context.Context, c *entity.Course) error {
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

func (r *fakeCourseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *fakeCourseRepo) ListPublished(_ context.Context, category string) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Course
	for _, c := range r.courses {
		if c.IsPublished && (category == "" || c.Category == category) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCourseRepo) ListAll(_ context.Context) ([]*entity.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Course
	for _, c := range r.courses {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeEpisodeRepo struct {
	mu       sync.Mutex
	seq      int
	episodes map[string]*entity.Episode
}

func newFakeEpisodeRepo() *fakeEpisodeRepo {
	return &fakeEpisodeRepo{episodes: map[string]*entity.Episode{}}
}

func (r *fakeEpisodeRepo) Create(_ context.Context, e *entity.Episode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	e.ID = fmt.Sprintf("episode-%d", r.seq)
	e.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	e.UpdatedAt = e.CreatedAt
	cp := *e
	r.episodes[e.ID] = &cp
	return nil
}

func (r *fakeEpisodeRepo) GetByID(_ context.Context, id string) (*entity.Episode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.episodes[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeEpisodeRepo) Update(_ context.Context, e *entity.Episode) error {
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

func (r *fakeEpisodeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.episodes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.episodes, id)
	return nil
}

func (r *fakeEpisodeRepo) ListByCourse(_ context.Context, courseID string) ([]*entity.Episode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Episode
	for _, e := range r.episodes {
		if e.CourseID == courseID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// fakeEnrollmentRepo enforces the (user, course) unique constraint under a
// mutex, the way the database does with ON CONFLICT DO NOTHING.
type fakeEnrollmentRepo struct {
	mu   sync.Mutex
	seq  int
	rows map[string]*entity.Enrollment // key: userID|courseID
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{rows: map[string]*entity.Enrollment{}}
}

func enrollmentKey(userID, courseID string) string {
	return userID + "|" + courseID
}

func (r *fakeEnrollmentRepo) CreateIfAbsent(_ context.Context, e *entity.Enrollment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := enrollmentKey(e.UserID, e.CourseID)
	if _, ok := r.rows[key]; ok {
		return false, nil
	}
	r.seq++
	e.ID = fmt.Sprintf("enrollment-%d", r.seq)
	e.CreatedAt = time.Now()
	cp := *e
	r.rows[key] = &cp
	return true, nil
}

func (r *fakeEnrollmentRepo) Exists(_ context.Context, userID, courseID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rows[enrollmentKey(userID, courseID)]
	return ok, nil
}

func (r *fakeEnrollmentRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
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

var (
	_ repository.UserRepository       = (*fakeUserRepo)(nil)
	_ repository.CourseRepository     = (*fakeCourseRepo)(nil)
	_ repository.EpisodeRepository    = (*fakeEpisodeRepo)(nil)
	_ repository.EnrollmentRepository = (*fakeEnrollmentRepo)(nil)
)

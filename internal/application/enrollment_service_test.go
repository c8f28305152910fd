package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bilguun-dev/courseware-api/internal/domain/access"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
)

func newEnrollmentFixture(t *testing.T, published bool) (*EnrollmentService, *fakeEnrollmentRepo, *entity.Course) {
	t.Helper()
	courses := newFakeCourseRepo()
	enrollments := newFakeEnrollmentRepo()
	course := &entity.Course{Title: "Go Basics", Slug: "go-basics", Price: 50000, IsPublished: published}
	require.NoError(t, courses.Create(context.Background(), course))
	svc := NewEnrollmentService(courses, enrollments, SimulatedPayment{}, nil)
	return svc, enrollments, course
}

func student(id string) *access.Viewer {
	return &access.Viewer{UserID: id, Role: entity.RoleStudent}
}

func TestEnrollCreatesPaidRow(t *testing.T) {
	svc, enrollments, course := newEnrollmentFixture(t, true)
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, student("u1"), course.ID))

	ok, err := enrollments.Exists(ctx, "u1", course.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, entity.EnrollmentPaid, enrollments.rows[enrollmentKey("u1", course.ID)].Status)
}

func TestEnrollIdempotent(t *testing.T) {
	svc, enrollments, course := newEnrollmentFixture(t, true)
	ctx := context.Background()

	require.NoError(t, svc.Enroll(ctx, student("u1"), course.ID))
	first := enrollments.rows[enrollmentKey("u1", course.ID)].ID

	// Second enroll succeeds and creates zero new rows.
	require.NoError(t, svc.Enroll(ctx, student("u1"), course.ID))
	n, err := enrollments.CountByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, first, enrollments.rows[enrollmentKey("u1", course.ID)].ID)
}

func TestEnrollConcurrentDuplicates(t *testing.T) {
	svc, enrollments, course := newEnrollmentFixture(t, true)
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Enroll(ctx, student("u1"), course.ID)
		}(i)
	}
	wg.Wait()

	// Every caller sees success, exactly one row exists.
	for _, err := range errs {
		assert.NoError(t, err)
	}
	count, err := enrollments.CountByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnrollRequiresSession(t *testing.T) {
	svc, _, course := newEnrollmentFixture(t, true)

	assert.ErrorIs(t, svc.Enroll(context.Background(), nil, course.ID), ErrUnauthenticated)
	assert.ErrorIs(t, svc.Enroll(context.Background(), &access.Viewer{}, course.ID), ErrUnauthenticated)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _, _ := newEnrollmentFixture(t, true)
	assert.ErrorIs(t, svc.Enroll(context.Background(), student("u1"), "missing"), ErrNotFound)
}

func TestEnrollUnpublishedCourseHiddenFromStudents(t *testing.T) {
	svc, enrollments, course := newEnrollmentFixture(t, false)
	ctx := context.Background()

	// Not forbidden: the course simply does not exist for students.
	assert.ErrorIs(t, svc.Enroll(ctx, student("u1"), course.ID), ErrNotFound)

	// Admins can still enroll themselves for review.
	admin := &access.Viewer{UserID: "a1", Role: entity.RoleAdmin}
	require.NoError(t, svc.Enroll(ctx, admin, course.ID))
	n, err := enrollments.CountByCourse(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert violates a uniqueness constraint
// (duplicate email, duplicate slug).
var ErrConflict = errors.New("conflict")

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// SetResetToken stores a reset token and its expiry on the user row.
	SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, token string) (*entity.User, error)
	// UpdatePasswordAndClearReset rehashes the credential and clears the
	// reset token columns in one statement, making the token single-use.
	UpdatePasswordAndClearReset(ctx context.Context, userID, passwordHash string) error
	List(ctx context.Context) ([]*entity.User, error)
}

// CourseRepository defines course persistence operations.
type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Course, error)
	// Update persists every mutable field. The slug is deliberately not part
	// of the statement (entity.ActiveSlugPolicy).
	Update(ctx context.Context, c *entity.Course) error
	// Delete removes the course; episodes and enrollments go with it via
	// ON DELETE CASCADE.
	Delete(ctx context.Context, id string) error
	ListPublished(ctx context.Context, category string) ([]*entity.Course, error)
	ListAll(ctx context.Context) ([]*entity.Course, error)
}

// EpisodeRepository defines episode persistence operations. Listings are
// ordered by position ascending with creation time as tie-break.
type EpisodeRepository interface {
	Create(ctx context.Context, e *entity.Episode) error
	GetByID(ctx context.Context, id string) (*entity.Episode, error)
	Update(ctx context.Context, e *entity.Episode) error
	Delete(ctx context.Context, id string) error
	ListByCourse(ctx context.Context, courseID string) ([]*entity.Episode, error)
}

// EnrollmentRepository defines enrollment persistence operations.
type EnrollmentRepository interface {
	// CreateIfAbsent inserts an enrollment unless one already exists for the
	// (user, course) pair. It reports whether a row was created. The insert
	// relies on the database unique constraint, so concurrent duplicate
	// calls cannot create two rows.
	CreateIfAbsent(ctx context.Context, e *entity.Enrollment) (created bool, err error)
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
}

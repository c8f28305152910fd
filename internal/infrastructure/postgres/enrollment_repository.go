package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
)

type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// CreateIfAbsent inserts the enrollment, relying on the unique constraint on
// (user_id, course_id) to collapse concurrent duplicates: ON CONFLICT DO
// NOTHING turns the losing insert of a race into a no-op instead of an
// error, so an application-level existence check is never the last line of
// defense.
func (r *EnrollmentRepository) CreateIfAbsent(ctx context.Context, e *entity.Enrollment) (bool, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO enrollments (user_id, course_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, course_id) DO NOTHING
		RETURNING id, created_at
	`, e.UserID, e.CourseID, e.Status)

	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			// Conflict path: the pair was already enrolled.
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *EnrollmentRepository) Exists(ctx context.Context, userID, courseID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2
		)
	`, userID, courseID).Scan(&exists)
	return exists, err
}

func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM enrollments WHERE course_id = $1
	`, courseID).Scan(&n)
	return n, err
}

var _ repository.EnrollmentRepository = (*EnrollmentRepository)(nil)

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
)

type CourseRepository struct {
	pool *pgxpool.Pool
}

func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

const courseColumns = `id, title, slug, description, category, price, fake_enrollment_bonus,
	discount_percent, discount_end_at, is_published, thumbnail_url, created_at, updated_at`

func scanCourse(row pgx.Row) (*entity.Course, error) {
	c := &entity.Course{}
	if err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.Description, &c.Category, &c.Price,
		&c.FakeEnrollmentBonus, &c.DiscountPercent, &c.DiscountEndAt, &c.IsPublished,
		&c.ThumbnailURL, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO courses (title, slug, description, category, price, fake_enrollment_bonus,
			discount_percent, discount_end_at, is_published, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, c.Title, c.Slug, c.Description, c.Category, c.Price, c.FakeEnrollmentBonus,
		c.DiscountPercent, c.DiscountEndAt, c.IsPublished, c.ThumbnailURL)

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE id = $1
	`, id))
}

func (r *CourseRepository) GetBySlug(ctx context.Context, slug string) (*entity.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		WHERE slug = $1
	`, slug))
}

// Update leaves the slug column untouched: course URLs stay stable even when
// the title changes (entity.ActiveSlugPolicy).
func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, category = $3, price = $4,
			fake_enrollment_bonus = $5, discount_percent = $6, discount_end_at = $7,
			is_published = $8, thumbnail_url = $9, updated_at = now()
		WHERE id = $10
	`, c.Title, c.Description, c.Category, c.Price, c.FakeEnrollmentBonus,
		c.DiscountPercent, c.DiscountEndAt, c.IsPublished, c.ThumbnailURL, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) ListPublished(ctx context.Context, category string) ([]*entity.Course, error) {
	q := `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE is_published
		ORDER BY created_at DESC
	`
	args := []any{}
	if category != "" {
		q = `
		SELECT ` + courseColumns + `
		FROM courses
		WHERE is_published AND category = $1
		ORDER BY created_at DESC
	`
		args = append(args, category)
	}
	return r.listCourses(ctx, q, args...)
}

func (r *CourseRepository) ListAll(ctx context.Context) ([]*entity.Course, error) {
	return r.listCourses(ctx, `
		SELECT `+courseColumns+`
		FROM courses
		ORDER BY created_at DESC
	`)
}

func (r *CourseRepository) listCourses(ctx context.Context, q string, args ...any) ([]*entity.Course, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ repository.CourseRepository = (*CourseRepository)(nil)

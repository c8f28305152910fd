package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
)

type EpisodeRepository struct {
	pool *pgxpool.Pool
}

func NewEpisodeRepository(pool *pgxpool.Pool) *EpisodeRepository {
	return &EpisodeRepository{pool: pool}
}

const episodeColumns = `id, course_id, title, description, position, is_free_preview,
	video_url, thumbnail_url, created_at, updated_at`

func scanEpisode(row pgx.Row) (*entity.Episode, error) {
	e := &entity.Episode{}
	if err := row.Scan(&e.ID, &e.CourseID, &e.Title, &e.Description, &e.Position,
		&e.IsFreePreview, &e.VideoURL, &e.ThumbnailURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EpisodeRepository) Create(ctx context.Context, e *entity.Episode) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO episodes (course_id, title, description, position, is_free_preview, video_url, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, e.CourseID, e.Title, e.Description, e.Position, e.IsFreePreview, e.VideoURL, e.ThumbnailURL)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EpisodeRepository) GetByID(ctx context.Context, id string) (*entity.Episode, error) {
	return scanEpisode(r.pool.QueryRow(ctx, `
		SELECT `+episodeColumns+`
		FROM episodes
		WHERE id = $1
	`, id))
}

func (r *EpisodeRepository) Update(ctx context.Context, e *entity.Episode) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE episodes
		SET title = $1, description = $2, position = $3, is_free_preview = $4,
			video_url = $5, thumbnail_url = $6, updated_at = now()
		WHERE id = $7
	`, e.Title, e.Description, e.Position, e.IsFreePreview, e.VideoURL, e.ThumbnailURL, e.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EpisodeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM episodes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByCourse orders by position with creation time as tie-break, so the
// display order is stable even when positions collide.
func (r *EpisodeRepository) ListByCourse(ctx context.Context, courseID string) ([]*entity.Episode, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+episodeColumns+`
		FROM episodes
		WHERE course_id = $1
		ORDER BY position ASC, created_at ASC
	`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Episode
	for rows.Next() {
		e, err := scanEpisode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var _ repository.EpisodeRepository = (*EpisodeRepository)(nil)

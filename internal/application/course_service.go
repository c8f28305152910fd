package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
	"github.com/bilguun-dev/courseware-api/pkg/helpers"
)

// CourseService is the admin side: course and episode CRUD, media uploads,
// and keeping the search index in step with the catalog. Role enforcement
// happens at the HTTP boundary; these methods trust their caller.
type CourseService struct {
	Courses   repository.CourseRepository
	Episodes  repository.EpisodeRepository
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewCourseService(courses repository.CourseRepository, episodes repository.EpisodeRepository, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *CourseService {
	return &CourseService{Courses: courses, Episodes: episodes, GCS: gcs, GCSBucket: gcsBucket, ES: es, ESIndex: esIndex, Logger: logger}
}

type CourseInput struct {
	Title               string
	Description         string
	Category            string
	Price               int64
	FakeEnrollmentBonus int
	DiscountPercent     int
	DiscountEndAt       *time.Time
	IsPublished         bool
	ThumbnailURL        string
}

// CreateCourse derives the slug from the title once, at creation. The slug
// never changes afterwards (entity.ActiveSlugPolicy), so course URLs stay
// stable across title edits.
func (s *CourseService) CreateCourse(ctx context.Context, in CourseInput) (*entity.Course, error) {
	c := &entity.Course{
		Title:               in.Title,
		Slug:                slug.Make(in.Title),
		Description:         in.Description,
		Category:            in.Category,
		Price:               in.Price,
		FakeEnrollmentBonus: in.FakeEnrollmentBonus,
		DiscountPercent:     in.DiscountPercent,
		DiscountEndAt:       in.DiscountEndAt,
		IsPublished:         in.IsPublished,
		ThumbnailURL:        in.ThumbnailURL,
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	s.syncIndex(ctx, c)
	return c, nil
}

// UpdateCourse overwrites every mutable field; the slug is left alone.
func (s *CourseService) UpdateCourse(ctx context.Context, id string, in CourseInput) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.Title = in.Title
	c.Description = in.Description
	c.Category = in.Category
	c.Price = in.Price
	c.FakeEnrollmentBonus = in.FakeEnrollmentBonus
	c.DiscountPercent = in.DiscountPercent
	c.DiscountEndAt = in.DiscountEndAt
	c.IsPublished = in.IsPublished
	c.ThumbnailURL = in.ThumbnailURL
	if err := s.Courses.Update(ctx, c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.syncIndex(ctx, c)
	return c, nil
}

// DeleteCourse removes the course; episodes and enrollments cascade in the
// database.
func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.Courses.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

// ListCourses returns every course, including unpublished drafts, for the
// admin table.
func (s *CourseService) ListCourses(ctx context.Context) ([]*entity.Course, error) {
	return s.Courses.ListAll(ctx)
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

type EpisodeInput struct {
	Title         string
	Description   string
	Position      int
	IsFreePreview bool
	VideoURL      string
	ThumbnailURL  string
}

func (s *CourseService) CreateEpisode(ctx context.Context, courseID string, in EpisodeInput) (*entity.Episode, error) {
	if _, err := s.Courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e := &entity.Episode{
		CourseID:      courseID,
		Title:         in.Title,
		Description:   in.Description,
		Position:      in.Position,
		IsFreePreview: in.IsFreePreview,
		VideoURL:      in.VideoURL,
		ThumbnailURL:  in.ThumbnailURL,
	}
	if err := s.Episodes.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *CourseService) UpdateEpisode(ctx context.Context, id string, in EpisodeInput) (*entity.Episode, error) {
	e, err := s.Episodes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	e.Title = in.Title
	e.Description = in.Description
	e.Position = in.Position
	e.IsFreePreview = in.IsFreePreview
	e.VideoURL = in.VideoURL
	e.ThumbnailURL = in.ThumbnailURL
	if err := s.Episodes.Update(ctx, e); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (s *CourseService) DeleteEpisode(ctx context.Context, id string) error {
	if err := s.Episodes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *CourseService) ListEpisodes(ctx context.Context, courseID string) ([]*entity.Episode, error) {
	if _, err := s.Courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Episodes.ListByCourse(ctx, courseID)
}

// UploadMedia relays a file to GCS and returns its public URL. The request
// blocks until the upload finishes or fails; there is no resumable upload
// coordination, callers resubmit on failure.
func (s *CourseService) UploadMedia(ctx context.Context, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("gcs not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("media", id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

// syncIndex keeps the search index matching the catalog: published courses
// are indexed, unpublished ones removed, so search can never surface a draft.
// Index failures are logged and swallowed; search lags, the catalog doesn't.
func (s *CourseService) syncIndex(ctx context.Context, c *entity.Course) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	if !c.IsPublished {
		s.deleteFromIndex(ctx, c.ID)
		return
	}
	doc := map[string]any{
		"id":          c.ID,
		"title":       c.Title,
		"slug":        c.Slug,
		"description": c.Description,
		"category":    c.Category,
		"price":       c.Price,
		"created_at":  c.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: c.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(ctx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("course_id", c.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("course_id", c.ID).Warn("es index response error")
	}
}

func (s *CourseService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(ctx, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("course_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/bilguun-dev/courseware-api/internal/domain/access"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/pricing"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
)

// CatalogService serves the viewer-facing course pages. Display counts and
// price quotes are recomputed on every call; nothing here is cached.
type CatalogService struct {
	Courses     repository.CourseRepository
	Episodes    repository.EpisodeRepository
	Enrollments repository.EnrollmentRepository
	ES          *elasticsearch.Client
	ESIndex     string
}

func NewCatalogService(courses repository.CourseRepository, episodes repository.EpisodeRepository, enrollments repository.EnrollmentRepository, es *elasticsearch.Client, esIndex string) *CatalogService {
	return &CatalogService{Courses: courses, Episodes: episodes, Enrollments: enrollments, ES: es, ESIndex: esIndex}
}

// CourseCard is the catalog listing item.
type CourseCard struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	Category     string        `json:"category,omitempty"`
	ThumbnailURL string        `json:"thumbnail_url,omitempty"`
	IsPublished  bool          `json:"is_published"`
	StudentCount int64         `json:"student_count"`
	Price        pricing.Quote `json:"price"`
	CreatedAt    time.Time     `json:"created_at"`
}

// EpisodeView annotates one episode with the viewer's playback decision.
// VideoURL is only populated when the episode is playable for this viewer;
// locked episodes never ship their stream URL to the client.
type EpisodeView struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Position      int    `json:"position"`
	IsFreePreview bool   `json:"is_free_preview"`
	Playable      bool   `json:"playable"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
	VideoURL      string `json:"video_url,omitempty"`
}

// CourseDetail is the course page with episode annotations.
type CourseDetail struct {
	CourseCard
	Enrolled bool          `json:"enrolled"`
	Episodes []EpisodeView `json:"episodes"`
	// Active is the episode selected by ?episode_id=, nil when none or when
	// the id does not belong to this course.
	Active *EpisodeView `json:"active,omitempty"`
}

func (s *CatalogService) card(ctx context.Context, c *entity.Course, now time.Time) (CourseCard, error) {
	real, err := s.Enrollments.CountByCourse(ctx, c.ID)
	if err != nil {
		return CourseCard{}, err
	}
	return CourseCard{
		ID:           c.ID,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Category:     c.Category,
		ThumbnailURL: c.ThumbnailURL,
		IsPublished:  c.IsPublished,
		StudentCount: pricing.DisplayCount(real, c),
		Price:        pricing.EffectivePrice(c, now),
		CreatedAt:    c.CreatedAt,
	}, nil
}

// ListPublished returns the catalog, newest first, optionally filtered by
// category.
func (s *CatalogService) ListPublished(ctx context.Context, category string) ([]CourseCard, error) {
	courses, err := s.Courses.ListPublished(ctx, category)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]CourseCard, 0, len(courses))
	for _, c := range courses {
		card, err := s.card(ctx, c, now)
		if err != nil {
			return nil, err
		}
		out = append(out, card)
	}
	return out, nil
}

// GetCourse builds the course page for one viewer. An unpublished course is
// ErrNotFound for non-admins regardless of free-preview flags; nothing in
// the response distinguishes "hidden" from "absent".
func (s *CatalogService) GetCourse(ctx context.Context, viewer *access.Viewer, slug, episodeID string) (*CourseDetail, error) {
	course, err := s.Courses.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !access.CourseVisible(viewer, course) {
		return nil, ErrNotFound
	}

	enrolled := false
	if viewer != nil && viewer.UserID != "" {
		enrolled, err = s.Enrollments.Exists(ctx, viewer.UserID, course.ID)
		if err != nil {
			return nil, err
		}
	}

	episodes, err := s.Episodes.ListByCourse(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	card, err := s.card(ctx, course, time.Now())
	if err != nil {
		return nil, err
	}
	detail := &CourseDetail{CourseCard: card, Enrolled: enrolled, Episodes: make([]EpisodeView, 0, len(episodes))}

	for _, ep := range episodes {
		// Evaluated per episode: the free-preview flag varies between
		// episodes of the same course.
		playable := access.Evaluate(viewer, course, ep, enrolled) == access.Playable
		view := EpisodeView{
			ID:            ep.ID,
			Title:         ep.Title,
			Description:   ep.Description,
			Position:      ep.Position,
			IsFreePreview: ep.IsFreePreview,
			Playable:      playable,
			ThumbnailURL:  ep.ThumbnailURL,
		}
		if playable {
			view.VideoURL = ep.VideoURL
		}
		detail.Episodes = append(detail.Episodes, view)
		if episodeID != "" && ep.ID == episodeID {
			v := view
			detail.Active = &v
		}
	}
	return detail, nil
}

// Search queries the Elasticsearch catalog index. Only published courses are
// indexed, so the result set cannot leak unpublished content.
func (s *CatalogService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

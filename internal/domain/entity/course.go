package entity

import "time"

// Course is a publishable unit of content.
//
// Slug is derived from the title at creation and never recomputed, even when
// the title changes later (SlugPolicy below). Price is stored in whole
// currency units; zero means the course is free. FakeEnrollmentBonus is a
// decorative, admin-configured number added to the real enrollment count for
// display only; it never affects access decisions.
type Course struct {
	ID                  string
	Title               string
	Slug                string
	Description         string
	Category            string
	Price               int64
	FakeEnrollmentBonus int
	DiscountPercent     int
	DiscountEndAt       *time.Time
	IsPublished         bool
	ThumbnailURL        string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SlugPolicy names the slug-mutability choice so it is explicit rather than
// an accident of missing code.
type SlugPolicy string

const (
	// SlugImmutable keeps course URLs stable across title edits.
	SlugImmutable SlugPolicy = "immutable"
)

// ActiveSlugPolicy is the policy in effect for course updates.
const ActiveSlugPolicy = SlugImmutable

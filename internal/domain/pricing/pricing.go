// Package pricing derives the viewer-facing numbers for a course: the
// displayed enrollment count and the effective price after discounts.
//
// The displayed count deliberately diverges from ground truth: admins
// configure a bonus that is added to the real count for marketing effect.
// That divergence is a product decision carried faithfully; keeping it
// behind these functions makes it auditable and swappable. Both values are
// recomputed server-side on every read, never cached.
package pricing

import (
	"math"
	"time"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
)

// DisplayCount returns the publicly shown "students enrolled" number:
// the real enrollment row count plus the course's decorative bonus.
// The bonus never subtracts; repositories and validation keep it >= 0.
func DisplayCount(realCount int64, course *entity.Course) int64 {
	return realCount + int64(course.FakeEnrollmentBonus)
}

// Quote is the price a viewer sees for a course at one instant.
type Quote struct {
	// Amount is the effective price after any active discount.
	Amount int64 `json:"amount"`
	// Original is the list price, shown struck through when Discounted.
	Original int64 `json:"original"`
	// Discounted reports whether an active discount lowered the price.
	Discounted bool `json:"discounted"`
	// Free reports the zero-price sentinel; render a "Free" label, not "0".
	Free bool `json:"free"`
	// DiscountPercent echoes the applied percentage, 0 when none applies.
	DiscountPercent int `json:"discount_percent,omitempty"`
	// DiscountEndAt is when the applied discount lapses, if it has an end.
	DiscountEndAt *time.Time `json:"discount_end_at,omitempty"`
}

// EffectivePrice computes the quote for a course as a pure function of
// (course, now). A discount applies when the percentage is positive and the
// end date is absent or still in the future. A lapsed discount simply stops
// applying; the stored percentage is not cleared (lazy expiry, recomputed on
// every read). The server's clock is authoritative; client countdowns are
// cosmetic only.
func EffectivePrice(course *entity.Course, now time.Time) Quote {
	if course.Price == 0 {
		return Quote{Free: true}
	}
	q := Quote{Amount: course.Price, Original: course.Price}
	if course.DiscountPercent <= 0 {
		return q
	}
	if course.DiscountEndAt != nil && !course.DiscountEndAt.After(now) {
		return q
	}
	q.Amount = int64(math.Round(float64(course.Price) * (1 - float64(course.DiscountPercent)/100)))
	q.Discounted = true
	q.DiscountPercent = course.DiscountPercent
	q.DiscountEndAt = course.DiscountEndAt
	return q
}

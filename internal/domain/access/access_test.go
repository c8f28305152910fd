package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
)

var (
	anon    *Viewer
	student = &Viewer{UserID: "u1", Role: entity.RoleStudent}
	admin   = &Viewer{UserID: "a1", Role: entity.RoleAdmin}
)

func course(published bool) *entity.Course {
	return &entity.Course{ID: "c1", IsPublished: published}
}

func episode(freePreview bool) *entity.Episode {
	return &entity.Episode{ID: "e1", CourseID: "c1", IsFreePreview: freePreview}
}

func TestCourseVisible(t *testing.T) {
	assert.True(t, CourseVisible(anon, course(true)))
	assert.True(t, CourseVisible(student, course(true)))
	assert.True(t, CourseVisible(admin, course(true)))

	// Unpublished courses exist only for admins.
	assert.False(t, CourseVisible(anon, course(false)))
	assert.False(t, CourseVisible(student, course(false)))
	assert.True(t, CourseVisible(admin, course(false)))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name        string
		viewer      *Viewer
		published   bool
		freePreview bool
		enrolled    bool
		want        Decision
	}{
		{"free preview anonymous", anon, true, true, false, Playable},
		{"free preview non-enrolled student", student, true, true, false, Playable},
		{"free preview admin", admin, true, true, false, Playable},
		{"gated anonymous", anon, true, false, false, Locked},
		{"gated non-enrolled student", student, true, false, false, Locked},
		{"gated enrolled student", student, true, false, true, Playable},
		{"gated admin without enrollment", admin, true, false, false, Playable},
		{"unpublished blocks student even on free preview", student, false, true, false, Locked},
		{"unpublished blocks anonymous", anon, false, true, false, Locked},
		{"unpublished blocks enrolled student", student, false, false, true, Locked},
		{"unpublished open to admin", admin, false, false, false, Playable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.viewer, course(tt.published), episode(tt.freePreview), tt.enrolled)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluatePerEpisode(t *testing.T) {
	// The same course can hold both free and gated episodes; the decision
	// must be made per episode, not per course.
	c := course(true)
	assert.Equal(t, Playable, Evaluate(student, c, episode(true), false))
	assert.Equal(t, Locked, Evaluate(student, c, episode(false), false))
}

func TestEnrolledFlagIgnoredForAnonymous(t *testing.T) {
	// Defensive: an anonymous viewer can never be enrolled, even if a caller
	// passes enrolled=true by mistake.
	assert.Equal(t, Locked, Evaluate(anon, course(true), episode(false), true))
}

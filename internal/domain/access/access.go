// Package access decides whether a viewer may see a course and play its
// episodes. It is a pure rule set over supplied facts: no database access,
// no side effects. Callers fetch the facts (course, episode, enrollment
// existence) and ask per episode, because the free-preview flag varies
// between episodes of the same course.
package access

import "github.com/bilguun-dev/courseware-api/internal/domain/entity"

// Viewer identifies the requesting party. A nil *Viewer is an anonymous
// visitor with no session.
type Viewer struct {
	UserID string
	Role   entity.Role
}

// IsAdmin reports whether the viewer holds the ADMIN role.
func (v *Viewer) IsAdmin() bool {
	return v != nil && v.Role == entity.RoleAdmin
}

// Decision is the playback verdict for one (viewer, course, episode) triple.
type Decision int

const (
	Locked Decision = iota
	Playable
)

func (d Decision) String() string {
	if d == Playable {
		return "playable"
	}
	return "locked"
}

// CourseVisible reports whether the course exists at all from the viewer's
// perspective. An unpublished course is visible only to admins; for everyone
// else it must be treated as not found, never as forbidden, so its existence
// does not leak.
func CourseVisible(v *Viewer, course *entity.Course) bool {
	return course.IsPublished || v.IsAdmin()
}

// Evaluate returns the playback decision for one episode. Precedence:
//
//  1. unpublished course and non-admin viewer: Locked (callers should have
//     already 404'd via CourseVisible; this keeps the function safe on its own)
//  2. free preview: Playable for any viewer, including anonymous
//  3. admin: Playable (content review override)
//  4. enrolled viewer: Playable
//  5. otherwise Locked
//
// enrolled is the caller-supplied fact "an enrollment row exists for
// (viewer, course)"; for anonymous viewers it must be false.
func Evaluate(v *Viewer, course *entity.Course, ep *entity.Episode, enrolled bool) Decision {
	if !CourseVisible(v, course) {
		return Locked
	}
	if ep.IsFreePreview {
		return Playable
	}
	if v.IsAdmin() {
		return Playable
	}
	if v != nil && enrolled {
		return Playable
	}
	return Locked
}

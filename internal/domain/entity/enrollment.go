package entity

import "time"

// EnrollmentStatus is the enrollment state. Current payment policy always
// creates PAID rows; PENDING exists so a real payment flow can be substituted
// without a schema change.
type EnrollmentStatus string

const (
	EnrollmentPending EnrollmentStatus = "PENDING"
	EnrollmentPaid    EnrollmentStatus = "PAID"
)

// Enrollment links one user to one course. At most one row may exist per
// (user, course) pair; the database enforces this with a unique constraint.
// Students never update or delete enrollments.
type Enrollment struct {
	ID        string
	UserID    string
	CourseID  string
	Status    EnrollmentStatus
	CreatedAt time.Time
}

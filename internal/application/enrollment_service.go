package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bilguun-dev/courseware-api/internal/domain/access"
	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
	"github.com/bilguun-dev/courseware-api/internal/domain/repository"
)

// EnrollmentService is the enrollment state machine: NONE -> PAID (via the
// payment policy). There is no unenroll; once created the row is permanent.
type EnrollmentService struct {
	Courses     repository.CourseRepository
	Enrollments repository.EnrollmentRepository
	Payment     PaymentPolicy
	Logger      *logrus.Logger
}

func NewEnrollmentService(courses repository.CourseRepository, enrollments repository.EnrollmentRepository, payment PaymentPolicy, logger *logrus.Logger) *EnrollmentService {
	return &EnrollmentService{Courses: courses, Enrollments: enrollments, Payment: payment, Logger: logger}
}

// Enroll creates the enrollment for (viewer, course).
//
// Idempotent: an existing enrollment returns success without touching
// storage. Concurrent duplicate calls are collapsed by the database unique
// constraint, so every caller observes success and exactly one row exists
// afterwards. Storage failures surface as-is; retrying is the caller's
// decision (typically a user resubmitting the form).
func (s *EnrollmentService) Enroll(ctx context.Context, viewer *access.Viewer, courseID string) error {
	if viewer == nil || viewer.UserID == "" {
		return ErrUnauthenticated
	}
	course, err := s.Courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	// Unpublished courses do not exist for non-admins.
	if !access.CourseVisible(viewer, course) {
		return ErrNotFound
	}

	status, err := s.Payment.Charge(ctx, viewer.UserID, course)
	if err != nil {
		return err
	}

	created, err := s.Enrollments.CreateIfAbsent(ctx, &entity.Enrollment{
		UserID:   viewer.UserID,
		CourseID: course.ID,
		Status:   status,
	})
	if err != nil {
		return err
	}
	if created && s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{
			"user_id":   viewer.UserID,
			"course_id": course.ID,
			"status":    string(status),
		}).Info("enrollment created")
	}
	return nil
}

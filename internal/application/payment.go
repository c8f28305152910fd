package application

import (
	"context"

	"github.com/bilguun-dev/courseware-api/internal/domain/entity"
)

// PaymentPolicy decides the status of a new enrollment. The current product
// has no payment gateway; enrollment is a simulated purchase that always
// succeeds. Keeping the decision behind this interface lets a real
// PENDING -> PAID | FAILED flow replace the simulation without touching the
// enrollment callers.
type PaymentPolicy interface {
	Charge(ctx context.Context, userID string, course *entity.Course) (entity.EnrollmentStatus, error)
}

// SimulatedPayment grants PAID unconditionally. This is a deliberate
// simulation boundary, not a missing integration.
type SimulatedPayment struct{}

func (SimulatedPayment) Charge(ctx context.Context, userID string, course *entity.Course) (entity.EnrollmentStatus, error) {
	return entity.EnrollmentPaid, nil
}

var _ PaymentPolicy = SimulatedPayment{}

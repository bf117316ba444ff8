package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type CancelAppointment struct {
	status *ChangeStatus
}

func NewCancelAppointment(status *ChangeStatus) *CancelAppointment {
	return &CancelAppointment{status: status}
}

func (uc *CancelAppointment) Execute(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return uc.status.Execute(ctx, appointmentID, domain.StatusCancelled)
}

package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
)

// ListRescheduleSlots asks the API for the slot grid of an existing
// appointment's service on another date.
type ListRescheduleSlots struct {
	gw     domain.Gateway
	policy Policy
}

func NewListRescheduleSlots(gw domain.Gateway, policy Policy) *ListRescheduleSlots {
	return &ListRescheduleSlots{gw: gw, policy: policy}
}

func (uc *ListRescheduleSlots) Execute(
	ctx context.Context,
	appointmentID string,
	date string,
) ([]domain.ServerSlot, error) {

	ap, err := uc.gw.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	salon, err := uc.gw.GetSalon(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}

	if err := uc.policy.CheckDate(salon, date); err != nil {
		return nil, err
	}

	return uc.gw.ListSlots(ctx, ap.SalonID, ap.ServiceID, date)
}

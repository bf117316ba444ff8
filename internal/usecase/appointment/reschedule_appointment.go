package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

type RescheduleAppointmentInput struct {
	Salon         models.Salon
	AppointmentID string

	DurationMinutes int

	Date string
	Time string
}

type RescheduleAppointment struct {
	gw     domain.Gateway
	audit  *audit.Dispatcher
	policy Policy
}

func NewRescheduleAppointment(
	gw domain.Gateway,
	audit *audit.Dispatcher,
	policy Policy,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		gw:     gw,
		audit:  audit,
		policy: policy,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	if in.AppointmentID == "" || in.Date == "" || in.Time == "" {
		return nil, domain.ErrIncomplete
	}
	if !domain.ValidTime(in.Time) {
		return nil, domain.ErrInvalidTime
	}

	if err := uc.policy.CheckDate(&in.Salon, in.Date); err != nil {
		return nil, err
	}

	if in.DurationMinutes > 0 && !domain.FitsOpeningHours(&in.Salon, in.Time, in.DurationMinutes) {
		return nil, domain.ErrOutsideHours
	}

	ap, err := uc.gw.RescheduleAppointment(ctx, in.AppointmentID, in.Date, in.Time)
	if err != nil {
		metrics.RecordBooking("reschedule", "failed")
		return nil, err
	}
	metrics.RecordBooking("reschedule", "created")

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.Salon.ID,
		UserID:   userID(session.UserFrom(ctx)),
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: in.AppointmentID,
		Metadata: map[string]string{
			"date": in.Date,
			"time": in.Time,
		},
	})

	return ap, nil
}

package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Salon models.Salon

	// Catalog is the salon's service list the draft was built from.
	Catalog []models.Service

	Draft models.BookingDraft
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	gw     domain.Gateway
	audit  *audit.Dispatcher
	policy Policy
}

func NewCreateAppointment(
	gw domain.Gateway,
	audit *audit.Dispatcher,
	policy Policy,
) *CreateAppointment {
	return &CreateAppointment{
		gw:     gw,
		audit:  audit,
		policy: policy,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	d := in.Draft

	// --------------------------------------------------
	// 1️⃣ Completeness
	// --------------------------------------------------
	if !domain.IsComplete(d) {
		return nil, domain.ErrIncomplete
	}
	if !domain.ValidTime(d.Time) {
		return nil, domain.ErrInvalidTime
	}

	// --------------------------------------------------
	// 2️⃣ Date in the salon's timezone
	// --------------------------------------------------
	if err := uc.policy.CheckDate(&in.Salon, d.Date); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Services and opening hours
	// --------------------------------------------------
	selected, err := domain.SelectServices(in.Catalog, d.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if !domain.FitsOpeningHours(&in.Salon, d.Time, domain.TotalDuration(selected)) {
		return nil, domain.ErrOutsideHours
	}

	// --------------------------------------------------
	// 4️⃣ Create through the API
	// --------------------------------------------------
	ap, err := uc.gw.CreateAppointment(ctx, domain.CreateRequest{
		SalonID:    in.Salon.ID,
		ServiceID:  d.ServiceIDs[0],
		ServiceIDs: d.ServiceIDs,
		Date:       d.Date,
		Time:       d.Time,
		Notes:      d.Notes,
	})
	if err != nil {
		metrics.RecordBooking("create", "failed")
		return nil, err
	}
	metrics.RecordBooking("create", "created")

	// --------------------------------------------------
	// 5️⃣ Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.Salon.ID,
		UserID:   userID(session.UserFrom(ctx)),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"date":       d.Date,
			"time":       d.Time,
			"serviceIds": d.ServiceIDs,
		},
	})

	return ap, nil
}

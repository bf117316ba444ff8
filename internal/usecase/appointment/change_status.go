package appointment

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/metrics"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

var ErrNotAllowed = httperr.ErrBusiness("not_allowed")

type ChangeStatus struct {
	gw    domain.Gateway
	audit *audit.Dispatcher
}

func NewChangeStatus(
	gw domain.Gateway,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{
		gw:    gw,
		audit: audit,
	}
}

// Execute requests a status change on behalf of the user in ctx. The API
// owns the stored status; this only refuses changes the table forbids.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	appointmentID string,
	to domain.Status,
) (*models.Appointment, error) {

	user, ok := session.UserFrom(ctx)
	if !ok {
		return nil, ErrNotAllowed
	}

	ap, err := uc.gw.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Central transition table, then role
	// --------------------------------------------------
	if err := domain.CheckTransition(ap, to); err != nil {
		metrics.RecordStatusChange(string(to), "refused")
		return nil, err
	}
	if user.Role == models.RoleCustomer && ap.CustomerID != "" && ap.CustomerID != user.ID {
		metrics.RecordStatusChange(string(to), "refused")
		return nil, ErrNotAllowed
	}
	if !slices.Contains(domain.Actions(ap, user.Role), to) {
		metrics.RecordStatusChange(string(to), "refused")
		return nil, ErrNotAllowed
	}

	updated, err := uc.gw.UpdateStatus(ctx, ap.ID, to)
	if err != nil {
		metrics.RecordStatusChange(string(to), "failed")
		return nil, err
	}
	metrics.RecordStatusChange(string(to), "ok")

	uc.audit.Dispatch(audit.Event{
		SalonID:  ap.SalonID,
		UserID:   user.ID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{
			"from": ap.Status,
			"to":   string(to),
		},
	})

	return updated, nil
}

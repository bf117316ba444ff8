package appointment

import (
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// CheckTransition validates a requested status change for ap without
// mutating it; the API answers with the updated appointment.
func CheckTransition(ap *models.Appointment, to Status) error {
	from, err := ParseStatus(ap.Status)
	if err != nil {
		return err
	}
	return CanTransition(from, to)
}

// Actions lists the status changes a role may request on ap. Customers may
// only cancel; owners and admins drive the rest of the lifecycle.
func Actions(ap *models.Appointment, role models.Role) []Status {
	from, err := ParseStatus(ap.Status)
	if err != nil {
		return nil
	}

	var out []Status
	for _, next := range NextStatuses(from) {
		if role == models.RoleCustomer && next != StatusCancelled {
			continue
		}
		out = append(out, next)
	}
	return out
}

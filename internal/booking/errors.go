package booking

import "github.com/BruksfildServices01/salon-booking/internal/httperr"

var (
	ErrServicesLocked  = httperr.ErrBusiness("services_locked")
	ErrSlotUnavailable = httperr.ErrBusiness("slot_unavailable")
	ErrSlotsLoading    = httperr.ErrBusiness("slots_loading")
	ErrSubmitting      = httperr.ErrBusiness("submit_in_progress")
	ErrClosed          = httperr.ErrBusiness("booking_closed")
	ErrNoDraft         = httperr.ErrBusiness("no_draft")
)

package appointment

import (
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

var (
	ErrIncomplete     = httperr.ErrBusiness("incomplete_booking")
	ErrInvalidTime    = httperr.ErrBusiness("invalid_time")
	ErrOutsideHours   = httperr.ErrBusiness("outside_hours")
	ErrUnknownService = httperr.ErrBusiness("unknown_service")
)

// IsComplete reports whether d names at least one service, a date and a time.
func IsComplete(d models.BookingDraft) bool {
	return len(d.ServiceIDs) > 0 && d.Date != "" && d.Time != ""
}

// SelectServices resolves ids against the salon catalog, keeping the order of ids.
func SelectServices(catalog []models.Service, ids []string) ([]models.Service, error) {
	byID := make(map[string]models.Service, len(catalog))
	for _, s := range catalog {
		byID[s.ID] = s
	}

	out := make([]models.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, ErrUnknownService
		}
		out = append(out, s)
	}
	return out, nil
}

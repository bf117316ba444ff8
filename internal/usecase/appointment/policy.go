package appointment

import (
	"time"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

// Policy holds the booking rules shared by the use cases.
type Policy struct {
	HorizonDays int
	Now         func() time.Time
}

func (p Policy) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return timezone.Now()
}

// CheckDate applies the weekday and window rules in the salon's timezone.
func (p Policy) CheckDate(salon *models.Salon, date string) error {
	return domain.CheckBookingDate(date, timezone.Location(salon.Timezone), p.now(), p.HorizonDays)
}

// Window is the bookable range as seen from the salon right now.
func (p Policy) Window(salon *models.Salon) domain.Window {
	return domain.BookingWindow(p.now().In(timezone.Location(salon.Timezone)), p.HorizonDays)
}

func userID(u models.User, ok bool) string {
	if !ok {
		return ""
	}
	return u.ID
}

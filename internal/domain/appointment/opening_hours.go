package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	DefaultOpeningTime = "09:00"
	DefaultClosingTime = "18:00"
)

// OpeningHours returns the salon's hours, falling back to the defaults.
func OpeningHours(salon *models.Salon) (string, string) {
	opening, closing := DefaultOpeningTime, DefaultClosingTime
	if salon != nil {
		if salon.OpeningTime != "" {
			opening = salon.OpeningTime
		}
		if salon.ClosingTime != "" {
			closing = salon.ClosingTime
		}
	}
	return opening, closing
}

// FitsOpeningHours reports whether [start, start+duration] lies inside the
// salon's opening hours.
func FitsOpeningHours(salon *models.Salon, start string, durationMinutes int) bool {
	opening, closing := OpeningHours(salon)

	open, ok := minutesOf(opening)
	if !ok {
		return false
	}
	closeAt, ok := minutesOf(closing)
	if !ok {
		return false
	}
	s, ok := minutesOf(start)
	if !ok {
		return false
	}

	return s >= open && s+durationMinutes <= closeAt
}

// ValidTime reports whether s is a 24-hour "HH:MM" time.
func ValidTime(s string) bool {
	_, ok := minutesOf(s)
	return ok && len(s) == 5
}

func minutesOf(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func formatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

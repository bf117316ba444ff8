package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
)

const DateLayout = "2006-01-02"

var (
	ErrInvalidDate   = httperr.ErrBusiness("invalid_date")
	ErrNotWeekday    = httperr.ErrBusiness("not_weekday")
	ErrOutsideWindow = httperr.ErrBusiness("outside_window")
)

// IsWeekday is false for Saturday and Sunday, and for anything that is not a
// "YYYY-MM-DD" date.
func IsWeekday(date string, loc *time.Location) bool {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return false
	}
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextWeekday moves a weekend day forward to Monday.
func NextWeekday(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	}
	return t
}

// Window is the inclusive range of bookable dates.
type Window struct {
	Min time.Time
	Max time.Time
}

// BookingWindow starts at the first weekday after today and ends
// horizonDays calendar days from today, whatever weekday that is.
func BookingWindow(now time.Time, horizonDays int) Window {
	today := midnight(now)
	return Window{
		Min: NextWeekday(today.AddDate(0, 0, 1)),
		Max: today.AddDate(0, 0, horizonDays),
	}
}

func (w Window) Contains(d time.Time) bool {
	d = midnight(d.In(w.Min.Location()))
	return !d.Before(w.Min) && !d.After(w.Max)
}

func (w Window) MinDate() string { return w.Min.Format(DateLayout) }
func (w Window) MaxDate() string { return w.Max.Format(DateLayout) }

// CheckBookingDate validates a requested date against the weekday rule and
// the booking window, both evaluated in loc.
func CheckBookingDate(date string, loc *time.Location, now time.Time, horizonDays int) error {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return ErrInvalidDate
	}
	if !IsWeekday(date, loc) {
		return ErrNotWeekday
	}
	if !BookingWindow(now.In(loc), horizonDays).Contains(d) {
		return ErrOutsideWindow
	}
	return nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

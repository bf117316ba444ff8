package timezone

import (
	"sync"
	"time"
)

const fallbackTimezone = "UTC"

var (
	mu              sync.RWMutex
	defaultTimezone = fallbackTimezone
)

// SetDefault sets the zone used when a salon carries none of its own.
func SetDefault(tz string) {
	if !IsValid(tz) {
		return
	}
	mu.Lock()
	defaultTimezone = tz
	mu.Unlock()
}

func Default() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultTimezone
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(Default()); err == nil {
		return loc
	}
	return time.UTC
}

func Now() time.Time {
	return time.Now().In(Location(Default()))
}

// ParseDate parses a "YYYY-MM-DD" date at midnight in the given zone.
func ParseDate(date, tz string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, Location(tz))
}

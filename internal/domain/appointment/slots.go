package appointment

import "github.com/BruksfildServices01/salon-booking/internal/models"

// SlotStep is the distance between consecutive candidate start times.
const SlotStep = 30

// GenerateSlots walks [opening, closing] in SlotStep-minute steps and emits a
// slot at every start where the whole duration still fits before closing.
// Slots that would overrun closing are omitted, not disabled.
//
// A slot is booked iff its start string equals one of booked exactly. This is
// not an overlap check: an appointment at 09:30 does not mark a 09:00 slot of
// 60 minutes as booked.
//
// Empty opening/closing fall back to 09:00/18:00. Callers must not pass a
// non-positive duration; negative values are treated as zero-length slots.
func GenerateSlots(totalDurationMinutes int, booked []string, opening, closing string) []TimeSlot {
	if opening == "" {
		opening = DefaultOpeningTime
	}
	if closing == "" {
		closing = DefaultClosingTime
	}

	open, ok := minutesOf(opening)
	if !ok {
		return []TimeSlot{}
	}
	closeAt, ok := minutesOf(closing)
	if !ok {
		return []TimeSlot{}
	}

	duration := totalDurationMinutes
	if duration < 0 {
		duration = 0
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	slots := []TimeSlot{}
	for m := open; m+duration <= closeAt; m += SlotStep {
		start := formatHM(m)
		_, isBooked := taken[start]
		slots = append(slots, TimeSlot{
			Start:    start,
			End:      formatHM(m + duration),
			IsBooked: isBooked,
		})
	}

	return slots
}

// TotalDuration sums the durations of the selected services.
func TotalDuration(services []models.Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	return total
}

// TotalPrice sums the selected services' prices after discounts.
func TotalPrice(services []models.Service) float64 {
	total := 0.0
	for _, s := range services {
		total += s.FinalPrice()
	}
	return total
}

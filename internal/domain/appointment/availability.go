package appointment

type AvailabilityInput struct {
	SalonID    string
	ServiceIDs []string
	Date       string
}

type TimeSlot struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	IsBooked bool   `json:"isBooked"`
}

// ServerSlot is a slot computed by the salon API for the reschedule path.
type ServerSlot struct {
	TimeSlot
	Covers []string `json:"covers"`
}

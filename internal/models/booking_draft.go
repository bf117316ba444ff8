package models

// BookingDraft is the unsaved selection behind an open booking dialog.
type BookingDraft struct {
	SalonID       string   `json:"salonId"`
	ServiceIDs    []string `json:"serviceIds"`
	Date          string   `json:"date"`
	Time          string   `json:"time"`
	Notes         string   `json:"notes"`
	AppointmentID string   `json:"appointmentId,omitempty"`
}

func (d BookingDraft) Clone() BookingDraft {
	out := d
	out.ServiceIDs = append([]string(nil), d.ServiceIDs...)
	return out
}

package dto

import (
	"github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

// BookingView is what the booking dialog renders from.
type BookingView struct {
	Phase        string                 `json:"phase"`
	Reason       string                 `json:"reason,omitempty"`
	Reschedule   bool                   `json:"reschedule"`
	Salon        models.Salon           `json:"salon"`
	Services     []models.Service       `json:"services"`
	Draft        models.BookingDraft    `json:"draft"`
	TotalMinutes int                    `json:"totalMinutes"`
	TotalPrice   float64                `json:"totalPrice"`
	MinDate      string                 `json:"minDate"`
	MaxDate      string                 `json:"maxDate"`
	LoadingSlots bool                   `json:"loadingSlots"`
	Slots        []appointment.TimeSlot `json:"slots"`
	CanSubmit    bool                   `json:"canSubmit"`
	Submitting   bool                   `json:"submitting"`
	Redirect     string                 `json:"redirect,omitempty"`
}

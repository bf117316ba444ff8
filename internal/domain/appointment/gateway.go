package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type CreateRequest struct {
	SalonID    string   `json:"salonId"`
	ServiceID  string   `json:"serviceId"`
	ServiceIDs []string `json:"serviceIds"`
	Date       string   `json:"date"`
	Time       string   `json:"time"`
	Notes      string   `json:"notes,omitempty"`
}

// Gateway is the salon REST API as seen by the use cases.
type Gateway interface {
	// -------- Salon --------
	GetSalon(ctx context.Context, salonID string) (*models.Salon, error)
	ListServices(ctx context.Context, salonID string) ([]models.Service, error)

	// -------- Appointment (read) --------
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	ListAppointments(ctx context.Context, salonID, date string) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	CreateAppointment(ctx context.Context, req CreateRequest) (*models.Appointment, error)
	RescheduleAppointment(ctx context.Context, id, date, time string) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*models.Appointment, error)

	// -------- Availability --------
	ListSlots(ctx context.Context, salonID, serviceID, date string) ([]ServerSlot, error)
}

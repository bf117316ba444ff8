package apiclient

import (
	"context"
	"net/http"
	"net/url"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

var (
	_ domain.Gateway        = (*Client)(nil)
	_ session.Authenticator = (*Client)(nil)
)

// --------------------------------------------------
// Auth
// --------------------------------------------------

func (c *Client) Login(ctx context.Context, email, password string) (*session.AuthResult, error) {
	var out session.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, in session.RegisterInput) (*session.AuthResult, error) {
	var out session.AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (c *Client) GetSalon(ctx context.Context, salonID string) (*models.Salon, error) {
	var salon models.Salon
	if err := c.getJSON(ctx, "/salons/"+url.PathEscape(salonID), nil, &salon); err != nil {
		return nil, err
	}
	return &salon, nil
}

func (c *Client) ListServices(ctx context.Context, salonID string) ([]models.Service, error) {
	var services []models.Service
	if err := c.getJSON(ctx, "/salons/"+url.PathEscape(salonID)+"/services", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (c *Client) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := c.getJSON(ctx, "/appointments/"+url.PathEscape(id), nil, &ap); err != nil {
		return nil, err
	}
	return &ap, nil
}

func (c *Client) ListAppointments(ctx context.Context, salonID, date string) ([]models.Appointment, error) {
	q := url.Values{}
	q.Set("salonId", salonID)
	q.Set("date", date)

	var aps []models.Appointment
	if err := c.getJSON(ctx, "/appointments", q, &aps); err != nil {
		return nil, err
	}
	for i := range aps {
		aps[i].Time = normalizeHM(aps[i].Time)
	}
	return aps, nil
}

func (c *Client) CreateAppointment(ctx context.Context, req domain.CreateRequest) (*models.Appointment, error) {
	var ap models.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", req, &ap); err != nil {
		return nil, err
	}
	return &ap, nil
}

func (c *Client) RescheduleAppointment(ctx context.Context, id, date, time string) (*models.Appointment, error) {
	var ap models.Appointment
	body := map[string]string{"date": date, "time": time}
	if err := c.do(ctx, http.MethodPut, "/appointments/"+url.PathEscape(id)+"/reschedule", body, &ap); err != nil {
		return nil, err
	}
	return &ap, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id string, status domain.Status) (*models.Appointment, error) {
	var ap models.Appointment
	body := map[string]string{"status": string(status)}
	if err := c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id)+"/status", body, &ap); err != nil {
		return nil, err
	}
	return &ap, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (c *Client) ListSlots(ctx context.Context, salonID, serviceID, date string) ([]domain.ServerSlot, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("serviceId", serviceID)
	q.Set("salonId", salonID)

	var slots []domain.ServerSlot
	if err := c.getJSON(ctx, "/slots", q, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// normalizeHM trims "09:00:00" style times to "09:00".
func normalizeHM(s string) string {
	if len(s) > 5 && s[2] == ':' {
		return s[:5]
	}
	return s
}

package appointment

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/dto"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

type ListAppointmentsByDate struct {
	gw domain.Gateway
}

func NewListAppointmentsByDate(
	gw domain.Gateway,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		gw: gw,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	salonID string,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if _, err := timezone.ParseDate(date, ""); err != nil {
		return nil, domain.ErrInvalidDate
	}

	appointments, err := uc.gw.ListAppointments(ctx, salonID, date)
	if err != nil {
		return nil, err
	}

	user, _ := session.UserFrom(ctx)
	return toListDTO(appointments, user.Role), nil
}

func toListDTO(appointments []models.Appointment, role models.Role) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]

		actions := []string{}
		for _, s := range domain.Actions(ap, role) {
			actions = append(actions, string(s))
		}

		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			Date:         ap.Date,
			Time:         ap.Time,
			Status:       ap.Status,
			CustomerName: ap.CustomerName,
			ServiceName:  ap.ServiceName,
			Amount:       ap.Amount,
			Actions:      actions,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})

	return out
}

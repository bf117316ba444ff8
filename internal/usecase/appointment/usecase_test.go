package appointment

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

func customerCtx() context.Context {
	return session.WithUser(context.Background(), models.User{ID: "c1", Role: models.RoleCustomer})
}

func ownerCtx() context.Context {
	return session.WithUser(context.Background(), models.User{ID: "o1", Role: models.RoleOwner})
}

func TestBookedTimesSkipsFreedSlots(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListAppointments", mock.Anything, "s1", "2026-10-19").Return([]models.Appointment{
		{Time: "09:00", Status: "pending"},
		{Time: "09:30", Status: "cancelled"},
		{Time: "10:00", Status: "rejected"},
		{Time: "10:30", Status: "accepted"},
		{Time: "11:00", Status: "something-new"},
	}, nil)

	uc := NewGetAvailability(gw, testPolicy(), nil)
	booked, err := uc.BookedTimes(context.Background(), "s1", "2026-10-19")

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30", "11:00"}, booked)
}

func TestGetAvailability(t *testing.T) {
	salon := testSalon()
	salon.OpeningTime, salon.ClosingTime = "09:00", "11:00"

	gw := new(MockGateway)
	gw.On("GetSalon", mock.Anything, "s1").Return(&salon, nil)
	gw.On("ListServices", mock.Anything, "s1").Return([]models.Service{
		{ID: "x", DurationMinutes: 60},
	}, nil)
	gw.On("ListAppointments", mock.Anything, "s1", "2026-10-19").Return([]models.Appointment{
		{Time: "09:30", Status: "accepted"},
	}, nil)

	uc := NewGetAvailability(gw, testPolicy(), nil)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: "s1", ServiceIDs: []string{"x"}, Date: "2026-10-19",
	})

	require.NoError(t, err)
	assert.Equal(t, []domain.TimeSlot{
		{Start: "09:00", End: "10:00", IsBooked: false},
		{Start: "09:30", End: "10:30", IsBooked: true},
		{Start: "10:00", End: "11:00", IsBooked: false},
	}, slots)
}

func TestGetAvailabilityDegradesWhenBookedTimesFail(t *testing.T) {
	salon := testSalon()

	gw := new(MockGateway)
	gw.On("GetSalon", mock.Anything, "s1").Return(&salon, nil)
	gw.On("ListServices", mock.Anything, "s1").Return(testCatalog(), nil)
	gw.On("ListAppointments", mock.Anything, "s1", "2026-10-19").Return(nil, errors.New("timeout"))

	uc := NewGetAvailability(gw, testPolicy(), nil)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: "s1", ServiceIDs: []string{"cut"}, Date: "2026-10-19",
	})

	require.NoError(t, err)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.False(t, s.IsBooked)
	}
}

func TestGetAvailabilityRejectsWeekend(t *testing.T) {
	salon := testSalon()
	gw := new(MockGateway)
	gw.On("GetSalon", mock.Anything, "s1").Return(&salon, nil)

	uc := NewGetAvailability(gw, testPolicy(), nil)
	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: "s1", ServiceIDs: []string{"cut"}, Date: "2026-10-17",
	})

	assert.ErrorIs(t, err, domain.ErrNotWeekday)
	gw.AssertNotCalled(t, "ListAppointments", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateAppointment(t *testing.T) {
	d, sink := newAudit()
	gw := new(MockGateway)
	gw.On("CreateAppointment", mock.Anything, domain.CreateRequest{
		SalonID:    "s1",
		ServiceID:  "cut",
		ServiceIDs: []string{"cut", "color"},
		Date:       "2026-10-19",
		Time:       "10:00",
		Notes:      "window seat",
	}).Return(&models.Appointment{ID: "a1", Status: "pending"}, nil)

	uc := NewCreateAppointment(gw, d, testPolicy())
	ap, err := uc.Execute(customerCtx(), CreateAppointmentInput{
		Salon:   testSalon(),
		Catalog: testCatalog(),
		Draft: models.BookingDraft{
			SalonID:    "s1",
			ServiceIDs: []string{"cut", "color"},
			Date:       "2026-10-19",
			Time:       "10:00",
			Notes:      "window seat",
		},
	})
	d.Close()

	require.NoError(t, err)
	assert.Equal(t, "a1", ap.ID)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "appointment_created", sink.events[0].Action)
	assert.Equal(t, "c1", sink.events[0].UserID)
}

func TestCreateAppointmentRefusals(t *testing.T) {
	base := models.BookingDraft{SalonID: "s1", ServiceIDs: []string{"cut"}, Date: "2026-10-19", Time: "10:00"}

	tests := []struct {
		name string
		edit func(d *models.BookingDraft)
		want error
	}{
		{"no time", func(d *models.BookingDraft) { d.Time = "" }, domain.ErrIncomplete},
		{"no services", func(d *models.BookingDraft) { d.ServiceIDs = nil }, domain.ErrIncomplete},
		{"bad time", func(d *models.BookingDraft) { d.Time = "9:00" }, domain.ErrInvalidTime},
		{"saturday", func(d *models.BookingDraft) { d.Date = "2026-10-17" }, domain.ErrNotWeekday},
		{"today", func(d *models.BookingDraft) { d.Date = "2026-10-15" }, domain.ErrOutsideWindow},
		{"unknown service", func(d *models.BookingDraft) { d.ServiceIDs = []string{"nails"} }, domain.ErrUnknownService},
		{"past closing", func(d *models.BookingDraft) { d.Time = "17:45" }, domain.ErrOutsideHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newAudit()
			defer d.Close()
			gw := new(MockGateway)

			draft := base.Clone()
			tt.edit(&draft)

			_, err := NewCreateAppointment(gw, d, testPolicy()).Execute(customerCtx(), CreateAppointmentInput{
				Salon: testSalon(), Catalog: testCatalog(), Draft: draft,
			})

			assert.ErrorIs(t, err, tt.want)
			gw.AssertNotCalled(t, "CreateAppointment", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateAppointmentKeepsServerMessage(t *testing.T) {
	d, sink := newAudit()
	gw := new(MockGateway)
	apiErr := &httperr.APIError{Status: http.StatusConflict, Message: "Slot already taken"}
	gw.On("CreateAppointment", mock.Anything, mock.Anything).Return(nil, apiErr)

	_, err := NewCreateAppointment(gw, d, testPolicy()).Execute(customerCtx(), CreateAppointmentInput{
		Salon:   testSalon(),
		Catalog: testCatalog(),
		Draft:   models.BookingDraft{ServiceIDs: []string{"cut"}, Date: "2026-10-19", Time: "10:00"},
	})
	d.Close()

	assert.Equal(t, "Slot already taken", httperr.UserMessage(err))
	assert.Empty(t, sink.events)
}

func TestRescheduleAppointment(t *testing.T) {
	d, sink := newAudit()
	gw := new(MockGateway)
	gw.On("RescheduleAppointment", mock.Anything, "a1", "2026-10-20", "14:00").
		Return(&models.Appointment{ID: "a1", Date: "2026-10-20", Time: "14:00"}, nil)

	ap, err := NewRescheduleAppointment(gw, d, testPolicy()).Execute(customerCtx(), RescheduleAppointmentInput{
		Salon:           testSalon(),
		AppointmentID:   "a1",
		DurationMinutes: 30,
		Date:            "2026-10-20",
		Time:            "14:00",
	})
	d.Close()

	require.NoError(t, err)
	assert.Equal(t, "14:00", ap.Time)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "appointment_rescheduled", sink.events[0].Action)
}

func TestListRescheduleSlots(t *testing.T) {
	salon := testSalon()
	gw := new(MockGateway)
	gw.On("GetAppointment", mock.Anything, "a1").Return(&models.Appointment{ID: "a1", SalonID: "s1", ServiceID: "cut"}, nil)
	gw.On("GetSalon", mock.Anything, "s1").Return(&salon, nil)
	gw.On("ListSlots", mock.Anything, "s1", "cut", "2026-10-20").Return([]domain.ServerSlot{
		{TimeSlot: domain.TimeSlot{Start: "09:00", End: "09:30"}},
	}, nil)

	slots, err := NewListRescheduleSlots(gw, testPolicy()).Execute(context.Background(), "a1", "2026-10-20")

	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00", slots[0].Start)
}

func TestChangeStatus(t *testing.T) {
	tests := []struct {
		name    string
		ctx     context.Context
		current string
		owner   string
		to      domain.Status
		wantErr error
	}{
		{"owner accepts pending", ownerCtx(), "pending", "c1", domain.StatusAccepted, nil},
		{"customer cancels own", customerCtx(), "accepted", "c1", domain.StatusCancelled, nil},
		{"customer cannot accept", customerCtx(), "pending", "c1", domain.StatusAccepted, ErrNotAllowed},
		{"customer cannot cancel others", customerCtx(), "pending", "c2", domain.StatusCancelled, ErrNotAllowed},
		{"terminal stays terminal", ownerCtx(), "completed", "c1", domain.StatusCancelled, domain.ErrInvalidTransition},
		{"no skipping ahead", ownerCtx(), "pending", "c1", domain.StatusCompleted, domain.ErrInvalidTransition},
		{"anonymous", context.Background(), "pending", "c1", domain.StatusCancelled, ErrNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newAudit()
			defer d.Close()

			gw := new(MockGateway)
			gw.On("GetAppointment", mock.Anything, "a1").
				Return(&models.Appointment{ID: "a1", SalonID: "s1", CustomerID: tt.owner, Status: tt.current}, nil)
			gw.On("UpdateStatus", mock.Anything, "a1", tt.to).
				Return(&models.Appointment{ID: "a1", Status: string(tt.to)}, nil)

			ap, err := NewChangeStatus(gw, d).Execute(tt.ctx, "a1", tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				gw.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(tt.to), ap.Status)
		})
	}
}

func TestCancelAppointment(t *testing.T) {
	d, sink := newAudit()
	gw := new(MockGateway)
	gw.On("GetAppointment", mock.Anything, "a1").
		Return(&models.Appointment{ID: "a1", SalonID: "s1", CustomerID: "c1", Status: "pending"}, nil)
	gw.On("UpdateStatus", mock.Anything, "a1", domain.StatusCancelled).
		Return(&models.Appointment{ID: "a1", Status: "cancelled"}, nil)

	ap, err := NewCancelAppointment(NewChangeStatus(gw, d)).Execute(customerCtx(), "a1")
	d.Close()

	require.NoError(t, err)
	assert.Equal(t, "cancelled", ap.Status)
	require.Len(t, sink.events, 1)
	assert.Equal(t, "appointment_cancelled", sink.events[0].Action)
}

func TestListAppointmentsByDate(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListAppointments", mock.Anything, "s1", "2026-10-19").Return([]models.Appointment{
		{ID: "b", Date: "2026-10-19", Time: "11:00", Status: "accepted"},
		{ID: "a", Date: "2026-10-19", Time: "09:00", Status: "pending"},
	}, nil)

	out, err := NewListAppointmentsByDate(gw).Execute(ownerCtx(), "s1", "2026-10-19")

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.ElementsMatch(t, []string{"accepted", "rejected", "cancelled"}, out[0].Actions)
	assert.ElementsMatch(t, []string{"in-progress", "cancelled", "no-show"}, out[1].Actions)
}

func TestListAppointmentsByDateInvalidDate(t *testing.T) {
	_, err := NewListAppointmentsByDate(new(MockGateway)).Execute(ownerCtx(), "s1", "19/10/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestExportAppointments(t *testing.T) {
	gw := new(MockGateway)
	gw.On("ListAppointments", mock.Anything, "s1", "2026-10-16").Return([]models.Appointment{
		{ID: "a1", Time: "09:00", Status: "accepted", CustomerName: "Ana", ServiceName: "Cut", Amount: 30},
	}, nil)
	gw.On("ListAppointments", mock.Anything, "s1", "2026-10-19").Return([]models.Appointment{}, nil)

	data, err := NewExportAppointments(gw).Execute(ownerCtx(), "s1", "2026-10-16", "2026-10-19")
	require.NoError(t, err)

	// 17th and 18th are a weekend.
	gw.AssertNumberOfCalls(t, "ListAppointments", 2)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(exportSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "Customer", header)

	name, err := f.GetCellValue(exportSheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	date, err := f.GetCellValue(exportSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-16", date)
}

func TestExportAppointmentsRange(t *testing.T) {
	uc := NewExportAppointments(new(MockGateway))

	_, err := uc.Execute(ownerCtx(), "s1", "2026-10-01", "2026-11-01")
	assert.ErrorIs(t, err, ErrRangeTooLarge)

	_, err = uc.Execute(ownerCtx(), "s1", "2026-10-20", "2026-10-19")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = uc.Execute(ownerCtx(), "s1", "yesterday", "2026-10-19")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

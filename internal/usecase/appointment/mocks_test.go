package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) GetSalon(ctx context.Context, salonID string) (*models.Salon, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Salon), args.Error(1)
}

func (m *MockGateway) ListServices(ctx context.Context, salonID string) ([]models.Service, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockGateway) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockGateway) ListAppointments(ctx context.Context, salonID, date string) ([]models.Appointment, error) {
	args := m.Called(ctx, salonID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockGateway) CreateAppointment(ctx context.Context, req domain.CreateRequest) (*models.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockGateway) RescheduleAppointment(ctx context.Context, id, date, t string) (*models.Appointment, error) {
	args := m.Called(ctx, id, date, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockGateway) UpdateStatus(ctx context.Context, id string, status domain.Status) (*models.Appointment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockGateway) ListSlots(ctx context.Context, salonID, serviceID, date string) ([]domain.ServerSlot, error) {
	args := m.Called(ctx, salonID, serviceID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServerSlot), args.Error(1)
}

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func newAudit() (*audit.Dispatcher, *recordingSink) {
	sink := &recordingSink{}
	return audit.NewDispatcher(sink, nil), sink
}

// Thursday 2026-10-15, mid-morning in UTC.
func fixedNow() time.Time {
	return time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
}

func testPolicy() Policy {
	return Policy{HorizonDays: 30, Now: fixedNow}
}

func testSalon() models.Salon {
	return models.Salon{ID: "s1", Name: "Studio", OpeningTime: "09:00", ClosingTime: "18:00", Timezone: "UTC"}
}

func testCatalog() []models.Service {
	return []models.Service{
		{ID: "cut", SalonID: "s1", Name: "Cut", Price: 30, DurationMinutes: 30},
		{ID: "color", SalonID: "s1", Name: "Color", Price: 80, DurationMinutes: 90},
	}
}

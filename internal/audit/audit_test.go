package audit

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type recordingSink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *recordingSink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestLoggerInsertsRow(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audit_logs"`)).
		WithArgs("s1", "u1", "appointment_created", "appointment", "a1", `{"time":"10:00"}`, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err = New(db).Log(Event{
		SalonID:  "s1",
		UserID:   "u1",
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: "a1",
		Metadata: map[string]string{"time": "10:00"},
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDispatcherDeliversAndDrains(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink, nil)

	d.Dispatch(Event{Action: "a"})
	d.Dispatch(Event{Action: "b"})
	d.Close()
	d.Close()

	require.Len(t, sink.events, 2)
	assert.Equal(t, "a", sink.events[0].Action)
	assert.Equal(t, "b", sink.events[1].Action)
}

func TestDispatcherLogsSinkErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := &recordingSink{err: errors.New("db down")}

	d := NewDispatcher(sink, zap.New(core))
	d.Dispatch(Event{Action: "appointment_created"})
	d.Close()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "audit write failed", logs.All()[0].Message)
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	require.NoError(t, NewLogSink(zap.New(core)).Log(Event{Action: "status_changed", EntityID: "a1"}))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "a1", logs.All()[0].ContextMap()["entity_id"])
}

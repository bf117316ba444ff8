package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

func init() {
	gin.SetMode(gin.TestMode)
	validators.Register()
}

func serveAuditLogs(h *AuditLogsHandler, target string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/audit-logs", h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestAuditLogsDisabledWithoutDB(t *testing.T) {
	w := serveAuditLogs(NewAuditLogsHandler(nil), "/audit-logs")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "audit_disabled")
}

func TestAuditLogsFiltersAndPages(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "audit_logs" WHERE salon_id = \$1 AND action = \$2`).
		WithArgs("s1", "appointment_created").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE salon_id = \$1 AND action = \$2 ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "salon_id", "user_id", "action", "entity", "entity_id", "metadata", "created_at"}).
			AddRow(3, "s1", "u1", "appointment_created", "appointment", "a3", "{}", time.Now()))

	w := serveAuditLogs(NewAuditLogsHandler(db), "/audit-logs?salonId=s1&action=appointment_created&page=2&limit=2")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Page  int              `json:"page"`
		Limit int              `json:"limit"`
		Total int64            `json:"total"`
		Logs  []map[string]any `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 2, body.Limit)
	assert.EqualValues(t, 3, body.Total)
	require.Len(t, body.Logs, 1)
	assert.Equal(t, "a3", body.Logs[0]["entity_id"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogsRejectsBadDates(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	w := serveAuditLogs(NewAuditLogsHandler(db), "/audit-logs?from=yesterday")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

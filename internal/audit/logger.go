package audit

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	row := models.AuditLog{
		SalonID:  ev.SalonID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&row).Error
}

// LogSink writes events to the process log when no database is configured.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: logger.OrNop(log)}
}

func (s *LogSink) Log(ev Event) error {
	s.log.Info("audit",
		zap.String("salon_id", ev.SalonID),
		zap.String("user_id", ev.UserID),
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
		zap.String("entity_id", ev.EntityID),
		zap.Any("metadata", ev.Metadata),
	)
	return nil
}

package models

import "time"

// AuditLog records writes this server sent to the salon API on a user's behalf.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SalonID  string `gorm:"size:64;index" json:"salon_id"`
	UserID   string `gorm:"size:64" json:"user_id"`
	Action   string `gorm:"size:50;not null" json:"action"`
	Entity   string `gorm:"size:50" json:"entity"`
	EntityID string `gorm:"size:64" json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/timezone"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

// NewAuditLogsHandler accepts a nil db when audit persistence is off.
func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type AuditLogsQuery struct {
	SalonID string `form:"salonId"`
	UserID  string `form:"userId"`
	Action  string `form:"action"`
	Entity  string `form:"entity"`
	From    string `form:"from" binding:"omitempty,isodate"`
	To      string `form:"to" binding:"omitempty,isodate"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Limit   int    `form:"limit" binding:"omitempty,min=1"`
}

// scope narrows a query to the filters that were given. Dates are whole
// days in the server's timezone.
func (q AuditLogsQuery) scope(db *gorm.DB) *gorm.DB {
	if q.SalonID != "" {
		db = db.Where("salon_id = ?", q.SalonID)
	}
	if q.UserID != "" {
		db = db.Where("user_id = ?", q.UserID)
	}
	if q.Action != "" {
		db = db.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		db = db.Where("entity = ?", q.Entity)
	}
	if from, err := timezone.ParseDate(q.From, timezone.Default()); q.From != "" && err == nil {
		db = db.Where("created_at >= ?", from)
	}
	if to, err := timezone.ParseDate(q.To, timezone.Default()); q.To != "" && err == nil {
		db = db.Where("created_at < ?", to.AddDate(0, 0, 1))
	}
	return db
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if h.db == nil {
		httperr.Write(c, http.StatusServiceUnavailable, "audit_disabled", "Audit logs are not being stored.")
		return
	}

	var q AuditLogsQuery
	if !bindQuery(c, &q) {
		return
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Limit == 0 || q.Limit > maxAuditLimit {
		q.Limit = defaultAuditLimit
	}

	ctx := c.Request.Context()

	// --------------------------------------------------
	// 1️⃣ Total
	// --------------------------------------------------
	var total int64
	if err := h.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Scopes(q.scope).
		Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	// --------------------------------------------------
	// 2️⃣ Page
	// --------------------------------------------------
	logs := []models.AuditLog{}
	if err := h.db.WithContext(ctx).
		Scopes(q.scope).
		Order("created_at DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  q.Page,
		"limit": q.Limit,
		"total": total,
		"logs":  logs,
	})
}

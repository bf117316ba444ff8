package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	s := middleware.SessionFrom(c)
	if s == nil {
		httperr.Unauthorized(c, "missing_session", "Please sign in again.")
		return
	}

	resp := gin.H{
		"user":      s.User,
		"dashboard": s.User.Role.DashboardPath(),
	}
	if !s.ExpiresAt.IsZero() {
		resp["expires_at"] = s.ExpiresAt
	}
	c.JSON(http.StatusOK, resp)
}

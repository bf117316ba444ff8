package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/access"
	"github.com/BruksfildServices01/salon-booking/internal/booking"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
)

type AuthHandler struct {
	sessions *session.Manager
	drafts   *booking.Registry
	log      *zap.Logger
}

func NewAuthHandler(sessions *session.Manager, drafts *booking.Registry, log *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, drafts: drafts, log: logger.OrNop(log)}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=customer owner"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Role == "" {
		req.Role = models.RoleCustomer
	}

	s, err := h.sessions.Register(c.Request.Context(), c.Writer, session.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		h.log.Info("register failed", zap.String("email", req.Email), zap.Error(err))
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     s.User,
		"redirect": s.User.Role.DashboardPath(),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.sessions.Login(c.Request.Context(), c.Writer, req.Email, req.Password)
	if err != nil {
		h.log.Info("login failed", zap.String("email", req.Email), zap.Error(err))
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     s.User,
		"redirect": s.User.Role.DashboardPath(),
	})
}

// Logout clears the cookies and any open booking of the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	if s, err := h.sessions.Current(c.Request); err == nil && s.ID != "" {
		h.drafts.Discard(c.Request.Context(), s.ID)
	}
	h.sessions.Logout(c.Writer)

	c.JSON(http.StatusOK, gin.H{"redirect": access.LoginPath})
}

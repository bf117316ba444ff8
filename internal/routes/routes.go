package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-booking/internal/audit"
	"github.com/BruksfildServices01/salon-booking/internal/booking"
	"github.com/BruksfildServices01/salon-booking/internal/config"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/handlers"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	"github.com/BruksfildServices01/salon-booking/internal/session"
	ucAppointment "github.com/BruksfildServices01/salon-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/validators"
)

// API is everything the server needs from the salon REST API.
type API interface {
	domain.Gateway
	session.Authenticator
}

type Deps struct {
	Config *config.Config
	Logger *zap.Logger
	API    API
	// DB is nil when audit logs are not persisted.
	DB     *gorm.DB
	Audit  *audit.Dispatcher
	Drafts *booking.Registry
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	validators.Register()

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	sessions := session.NewManager(d.API, cfg.JWTSecret, cfg.CookieSecure)

	policy := ucAppointment.Policy{HorizonDays: cfg.HorizonDays}

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(d.API, policy, d.Logger)
	rescheduleSlotsUC := ucAppointment.NewListRescheduleSlots(d.API, policy)

	createAppointmentUC := ucAppointment.NewCreateAppointment(d.API, d.Audit, policy)
	rescheduleAppointmentUC := ucAppointment.NewRescheduleAppointment(d.API, d.Audit, policy)

	changeStatusUC := ucAppointment.NewChangeStatus(d.API, d.Audit)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(changeStatusUC)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(d.API)
	exportAppointmentsUC := ucAppointment.NewExportAppointments(d.API)

	bookingDeps := booking.Deps{
		Slots:      getAvailabilityUC,
		Create:     createAppointmentUC,
		Reschedule: rescheduleAppointmentUC,
		Policy:     policy,
		Logger:     d.Logger,
	}

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(sessions, d.Drafts, d.Logger)
	meHandler := handlers.NewMeHandler()
	pageHandler := handlers.NewPageHandler()

	bookingHandler := handlers.NewBookingHandler(d.API, d.Drafts, bookingDeps, d.Logger)
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC, rescheduleSlotsUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		changeStatusUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		exportAppointmentsUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	// ======================================================
	// 🔧 OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// 🌍 PAGES
	// ======================================================
	pages := r.Group("/")
	pages.Use(middleware.AccessControl())
	{
		pages.GET("/", pageHandler.Static("home", "Salons"))
		pages.GET("/auth/login", pageHandler.Static("login", "Sign in"))
		pages.GET("/auth/register", pageHandler.Static("register", "Create account"))

		pages.GET("/dashboard", pageHandler.Static("dashboard", "Dashboard"))
		pages.GET("/dashboard/:role", pageHandler.Dashboard)
		pages.GET("/dashboard/:role/:section", pageHandler.Dashboard)

		pages.GET("/appointments", pageHandler.Static("appointments", "My appointments"))
		pages.GET("/profile", pageHandler.Static("profile", "Profile"))
		pages.GET("/booking", pageHandler.Static("booking", "Book an appointment"))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireSession(sessions))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// BOOKING DIALOG
			// ------------------------------
			secured.POST("/booking", bookingHandler.Open)
			secured.GET("/booking", bookingHandler.Get)
			secured.DELETE("/booking", bookingHandler.Discard)
			secured.POST("/booking/services/:id/toggle", bookingHandler.ToggleService)
			secured.PUT("/booking/date", bookingHandler.SelectDate)
			secured.GET("/booking/slots", bookingHandler.Slots)
			secured.PUT("/booking/time", bookingHandler.SelectTime)
			secured.PUT("/booking/notes", bookingHandler.SetNotes)
			secured.POST("/booking/submit", bookingHandler.Submit)

			// ------------------------------
			// AVAILABILITY
			// ------------------------------
			secured.GET("/salons/:id/availability", availabilityHandler.ForSalon)
			secured.GET("/appointments/:id/slots", availabilityHandler.ForReschedule)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			owner := secured.Group("/owner")
			owner.Use(middleware.RequireRole(models.RoleOwner, models.RoleAdmin))
			{
				owner.GET("/appointments", appointmentHandler.ListByDate)
				owner.GET("/appointments/export", appointmentHandler.Export)
			}

			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}

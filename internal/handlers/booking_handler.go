package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-booking/internal/booking"
	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	"github.com/BruksfildServices01/salon-booking/internal/logger"
	"github.com/BruksfildServices01/salon-booking/internal/middleware"
	"github.com/BruksfildServices01/salon-booking/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// BookingHandler drives the booking dialog of the current session.
type BookingHandler struct {
	gw    domain.Gateway
	flows *booking.Registry
	deps  booking.Deps
	log   *zap.Logger
}

func NewBookingHandler(
	gw domain.Gateway,
	flows *booking.Registry,
	deps booking.Deps,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		gw:    gw,
		flows: flows,
		deps:  deps,
		log:   logger.OrNop(log),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type OpenBookingRequest struct {
	SalonID       string `json:"salonId" binding:"required_without=AppointmentID"`
	AppointmentID string `json:"appointmentId"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required,isodate"`
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required,hhmm"`
}

type NotesRequest struct {
	Notes string `json:"notes" binding:"max=500"`
}

// ======================================================
// OPEN / GET / DISCARD
// ======================================================

func (h *BookingHandler) Open(c *gin.Context) {
	s := middleware.SessionFrom(c)

	var req OpenBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	var flow *booking.Flow
	if req.AppointmentID != "" {
		// --------------------------------------------------
		// Reschedule an existing appointment
		// --------------------------------------------------
		ap, err := h.gw.GetAppointment(ctx, req.AppointmentID)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		if s.User.Role == models.RoleCustomer && ap.CustomerID != "" && ap.CustomerID != s.User.ID {
			httperr.Respond(c, ucAppointment.ErrNotAllowed)
			return
		}
		if st, err := domain.ParseStatus(ap.Status); err == nil && st.IsTerminal() {
			httperr.Respond(c, booking.ErrClosed)
			return
		}

		salon, catalog, ok := h.salon(c, ap.SalonID)
		if !ok {
			return
		}
		flow = booking.NewRescheduleFlow(h.deps, *salon, catalog, *ap)
	} else {
		// --------------------------------------------------
		// New booking, resuming a saved draft for the salon
		// --------------------------------------------------
		salon, catalog, ok := h.salon(c, req.SalonID)
		if !ok {
			return
		}
		flow = booking.NewFlow(h.deps, *salon, catalog)

		if d := h.flows.Stored(ctx, s.ID); d != nil && d.SalonID == salon.ID && d.AppointmentID == "" {
			flow.Restore(ctx, *d)
		}
	}

	h.flows.Open(ctx, s.ID, flow)
	httpresp.Created(c, flow.View())
}

func (h *BookingHandler) salon(c *gin.Context, salonID string) (*models.Salon, []models.Service, bool) {
	ctx := c.Request.Context()

	salon, err := h.gw.GetSalon(ctx, salonID)
	if err != nil {
		httperr.Respond(c, err)
		return nil, nil, false
	}
	catalog, err := h.gw.ListServices(ctx, salonID)
	if err != nil {
		httperr.Respond(c, err)
		return nil, nil, false
	}
	return salon, catalog, true
}

func (h *BookingHandler) Get(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	httpresp.OK(c, flow.View())
}

func (h *BookingHandler) Discard(c *gin.Context) {
	s := middleware.SessionFrom(c)
	h.flows.Discard(c.Request.Context(), s.ID)
	httpresp.NoContent(c)
}

// ======================================================
// EDITS
// ======================================================

func (h *BookingHandler) ToggleService(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}
	h.apply(c, flow, flow.ToggleService(c.Param("id")))
}

func (h *BookingHandler) SelectDate(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	var req SelectDateRequest
	if !bindJSON(c, &req) {
		return
	}
	h.apply(c, flow, flow.SelectDate(c.Request.Context(), req.Date))
}

func (h *BookingHandler) SelectTime(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	var req SelectTimeRequest
	if !bindJSON(c, &req) {
		return
	}
	h.apply(c, flow, flow.SelectTime(req.Time))
}

func (h *BookingHandler) SetNotes(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	var req NotesRequest
	if !bindJSON(c, &req) {
		return
	}
	h.apply(c, flow, flow.SetNotes(req.Notes))
}

// Slots waits for the grid of the selected date.
func (h *BookingHandler) Slots(c *gin.Context) {
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	if _, err := flow.WaitSlots(c.Request.Context()); err != nil {
		httperr.Write(c, http.StatusGatewayTimeout, "slots_timeout", "Available times are taking too long to load.")
		return
	}
	httpresp.OK(c, flow.View())
}

// ======================================================
// SUBMIT
// ======================================================

func (h *BookingHandler) Submit(c *gin.Context) {
	s := middleware.SessionFrom(c)
	flow, ok := h.flow(c)
	if !ok {
		return
	}

	ap, err := flow.Submit(c.Request.Context())
	h.flows.Persist(c.Request.Context(), s.ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": ap,
		"redirect":    booking.SuccessRedirect,
	})
}

// ======================================================
// HELPERS
// ======================================================

func (h *BookingHandler) flow(c *gin.Context) (*booking.Flow, bool) {
	s := middleware.SessionFrom(c)
	flow, err := h.flows.Get(s.ID)
	if err != nil {
		httperr.Respond(c, err)
		return nil, false
	}
	return flow, true
}

// apply answers an edit: the refusal, or the new view after saving the draft.
func (h *BookingHandler) apply(c *gin.Context, flow *booking.Flow, err error) {
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	h.flows.Persist(c.Request.Context(), middleware.SessionFrom(c).ID)
	httpresp.OK(c, flow.View())
}

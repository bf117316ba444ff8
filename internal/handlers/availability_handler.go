package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-booking/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability    *ucAppointment.GetAvailability
	rescheduleSlots *ucAppointment.ListRescheduleSlots
}

func NewAvailabilityHandler(
	availability *ucAppointment.GetAvailability,
	rescheduleSlots *ucAppointment.ListRescheduleSlots,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availability:    availability,
		rescheduleSlots: rescheduleSlots,
	}
}

type DateQuery struct {
	Date string `form:"date" binding:"required,isodate"`
}

// ForSalon is GET /api/salons/:id/availability?date&serviceIds.
func (h *AvailabilityHandler) ForSalon(c *gin.Context) {
	var q DateQuery
	if !bindQuery(c, &q) {
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:    c.Param("id"),
		ServiceIDs: splitIDs(c.QueryArray("serviceIds")),
		Date:       q.Date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ForReschedule is GET /api/appointments/:id/slots?date.
func (h *AvailabilityHandler) ForReschedule(c *gin.Context) {
	var q DateQuery
	if !bindQuery(c, &q) {
		return
	}

	slots, err := h.rescheduleSlots.Execute(c.Request.Context(), c.Param("id"), q.Date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}

package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-booking/internal/httperr"
	"github.com/BruksfildServices01/salon-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-booking/internal/usecase/appointment"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	changeStatus *ucAppointment.ChangeStatus
	cancel       *ucAppointment.CancelAppointment
	listByDate   *ucAppointment.ListAppointmentsByDate
	export       *ucAppointment.ExportAppointments
}

func NewAppointmentHandler(
	changeStatus *ucAppointment.ChangeStatus,
	cancel *ucAppointment.CancelAppointment,
	listByDate *ucAppointment.ListAppointmentsByDate,
	export *ucAppointment.ExportAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		changeStatus: changeStatus,
		cancel:       cancel,
		listByDate:   listByDate,
		export:       export,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListByDateQuery struct {
	SalonID string `form:"salonId" binding:"required"`
	Date    string `form:"date" binding:"required,isodate"`
}

type ExportQuery struct {
	SalonID string `form:"salonId" binding:"required"`
	From    string `form:"from" binding:"required,isodate"`
	To      string `form:"to" binding:"required,isodate"`
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	to, err := domain.ParseStatus(req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), c.Param("id"), to)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// OWNER DASHBOARD
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	var q ListByDateQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.listByDate.Execute(c.Request.Context(), q.SalonID, q.Date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) Export(c *gin.Context) {
	var q ExportQuery
	if !bindQuery(c, &q) {
		return
	}

	data, err := h.export.Execute(c.Request.Context(), q.SalonID, q.From, q.To)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	filename := fmt.Sprintf("appointments_%s_%s.xlsx", q.From, q.To)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

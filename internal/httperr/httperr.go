package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

var businessMessages = map[string]string{
	"not_weekday":        "Bookings are only available Monday to Friday.",
	"outside_window":     "Please pick a date within the booking window.",
	"incomplete_booking": "Select at least one service, a date and a time.",
	"slot_unavailable":   "That time is no longer available.",
	"slots_loading":      "Available times are still loading.",
	"submit_in_progress": "Your booking is already being submitted.",
	"services_locked":    "Services cannot be changed when rescheduling.",
	"unknown_service":    "Service not found.",
	"invalid_date":       "Invalid date.",
	"invalid_time":       "Invalid time.",
	"invalid_status":     "Unknown appointment status.",
	"invalid_transition": "The appointment cannot move to that status.",
	"booking_closed":     "This booking is already complete.",
	"no_draft":           "No booking in progress.",
	"range_too_large":    "The export range is limited to 31 days.",
	"invalid_range":      "The start date must not be after the end date.",
	"outside_hours":      "That time does not fit within opening hours.",
	"not_allowed":        "You cannot make this change.",
}

var businessStatus = map[string]int{
	"slot_unavailable":   http.StatusConflict,
	"submit_in_progress": http.StatusConflict,
	"invalid_transition": http.StatusConflict,
	"booking_closed":     http.StatusConflict,
	"slots_loading":      http.StatusConflict,
	"no_draft":           http.StatusNotFound,
	"unknown_service":    http.StatusNotFound,
	"not_allowed":        http.StatusForbidden,
}

// Respond maps a use-case error onto the JSON error contract.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		status, ok := businessStatus[be.Code]
		if !ok {
			status = http.StatusBadRequest
		}
		msg, ok := businessMessages[be.Code]
		if !ok {
			msg = be.Code
		}
		Write(c, status, be.Code, msg)
		return
	}

	if ae, ok := AsAPIError(err); ok {
		status := ae.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		code := ae.Code
		if code == "" {
			code = "api_error"
		}
		Write(c, status, code, ae.Error())
		return
	}

	Internal(c, "internal_error", "Something went wrong.")
}

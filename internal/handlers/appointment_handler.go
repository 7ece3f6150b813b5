package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmdantas/agenda-api/internal/httperr"
	"github.com/rmdantas/agenda-api/internal/httpresp"
	"github.com/rmdantas/agenda-api/internal/middleware"
	ucAppointment "github.com/rmdantas/agenda-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucAppointment.CreateAppointment
	updateUC *ucAppointment.UpdateAppointment
	cancelUC *ucAppointment.CancelAppointment
	listUC   *ucAppointment.ListAppointments
	getUC    *ucAppointment.GetAppointment
	loc      *time.Location
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listUC *ucAppointment.ListAppointments,
	getUC *ucAppointment.GetAppointment,
	loc *time.Location,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		updateUC: updateUC,
		cancelUC: cancelUC,
		listUC:   listUC,
		getUC:    getUC,
		loc:      loc,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProviderUsername string `json:"provider_username" binding:"required"`
	ClientName       string `json:"client_name" binding:"required"`
	ClientEmail      string `json:"client_email" binding:"omitempty,email"`
	ClientPhone      string `json:"client_phone" binding:"required"`
	Date             string `json:"date" binding:"required"`
	Time             string `json:"time" binding:"required"`
}

type UpdateAppointmentRequest struct {
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	ClientName  *string `json:"client_name"`
	ClientEmail *string `json:"client_email"`
	ClientPhone *string `json:"client_phone"`
}

// ======================================================
// CREATE (public: any caller may book)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid appointment payload.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ProviderUsername: req.ProviderUsername,
		ClientName:       req.ClientName,
		ClientEmail:      req.ClientEmail,
		ClientPhone:      req.ClientPhone,
		Date:             req.Date,
		Time:             req.Time,
	})
	if err != nil {
		h.mapCreateErrors(c, err)
		return
	}

	c.JSON(201, ap)
}

func (h *AppointmentHandler) mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "provider_not_found"):
		httperr.BadRequest(c, "provider_not_found", "Unknown provider username.")
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
	case httperr.IsBusiness(err, "booking_in_past"):
		httperr.BadRequest(c, "booking_in_past", "Appointments cannot be booked in the past.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Outside the provider's working hours.")
	case httperr.IsBusiness(err, "slot_taken"):
		httperr.BadRequest(c, "slot_taken", "That slot is already booked.")
	default:
		httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment.")
	}
}

// ======================================================
// LIST (own calendar only)
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	var date *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		d, err := parseDate(dateStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date, expected YYYY-MM-DD.")
			return
		}
		date = &d
	}

	appointments, err := h.listUC.Execute(c.Request.Context(), providerID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, appointments)
}

// ======================================================
// GET / UPDATE / CANCEL (owning provider only)
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), providerID, uint(id))
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid update payload.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), providerID, uint(id), ucAppointment.UpdateAppointmentInput{
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		case httperr.IsBusiness(err, "invalid_date_or_time"):
			httperr.BadRequest(c, "invalid_date_or_time", "Invalid date or time.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Cancelled appointments cannot be changed.")
		case httperr.IsBusiness(err, "outside_working_hours"):
			httperr.BadRequest(c, "outside_working_hours", "Outside the provider's working hours.")
		case httperr.IsBusiness(err, "slot_taken"):
			httperr.BadRequest(c, "slot_taken", "That slot is already booked.")
		default:
			httperr.Internal(c, "failed_to_update_appointment", "Failed to update appointment.")
		}
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), providerID, uint(id))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "appointment_not_found"):
			httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		case httperr.IsBusiness(err, "invalid_state"):
			httperr.BadRequest(c, "invalid_state", "Appointment is already cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel_appointment", "Failed to cancel appointment.")
		}
		return
	}

	httpresp.OK(c, ap)
}

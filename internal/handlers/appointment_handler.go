package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/dcastillo-dev/barberbook/internal/domain/appointment"
	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/httpresp"
	"github.com/dcastillo-dev/barberbook/internal/middleware"
	"github.com/dcastillo-dev/barberbook/internal/models"
	ucAppointment "github.com/dcastillo-dev/barberbook/internal/usecase/appointment"
)

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	rescheduleUC   *ucAppointment.RescheduleAppointment
	cancelUC       *ucAppointment.CancelAppointment
	completeUC     *ucAppointment.CompleteAppointment
	availabilityUC *ucAppointment.GetAvailability
	listUC         *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	availabilityUC *ucAppointment.GetAvailability,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		rescheduleUC:   rescheduleUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		availabilityUC: availabilityUC,
		listUC:         listUC,
	}
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	BarberID   uint   `json:"barber_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Hour       string `json:"hour" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Hour string `json:"hour" binding:"required"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:   c.GetUint(middleware.ContextUserID),
		BarberID:   req.BarberID,
		Date:       req.Date,
		Hour:       req.Hour,
		ServiceIDs: req.ServiceIDs,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		ActorID:       c.GetUint(middleware.ContextUserID),
		AppointmentID: id,
		Date:          req.Date,
		Hour:          req.Hour,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), c.GetUint(middleware.ContextUserID), id)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), c.GetUint(middleware.ContextUserID), id)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// Availability is public: clients browse free slots before logging in.
func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID, ok := paramUint(c, "barberId")
	if !ok {
		return
	}

	slotMinutes := 0
	if raw := c.Query("slot_minutes"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			httperr.BadRequest(c, "invalid_request", "slot_minutes must be a positive integer")
			return
		}
		slotMinutes = v
	}

	out, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID:    barberID,
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
		SlotMinutes: slotMinutes,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserID)

	var (
		views []ucAppointment.AppointmentView
		err   error
	)
	if c.GetString(middleware.ContextUserRole) == models.RoleBarber {
		views, err = h.listUC.ForBarber(c.Request.Context(), userID)
	} else {
		views, err = h.listUC.ForClient(c.Request.Context(), userID)
	}
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	views, err := h.listUC.All(c.Request.Context(), c.GetString(middleware.ContextUserRole))
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, views)
}

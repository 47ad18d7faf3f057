package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/httpresp"
	"github.com/dcastillo-dev/barberbook/internal/middleware"
	"github.com/dcastillo-dev/barberbook/internal/models"
	"github.com/dcastillo-dev/barberbook/internal/schedule"
)

type ScheduleHandler struct {
	store *schedule.Store
}

func NewScheduleHandler(store *schedule.Store) *ScheduleHandler {
	return &ScheduleHandler{store: store}
}

type WeeklyScheduleRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	IsActive  *bool  `json:"is_active"`
}

// targetBarberID resolves which barber's schedule is being managed: barbers
// act on their own, admins name one with :barberId.
func targetBarberID(c *gin.Context) (uint, bool) {
	if c.GetString(middleware.ContextUserRole) == models.RoleAdmin {
		return paramUint(c, "barberId")
	}
	return c.GetUint(middleware.ContextUserID), true
}

func (h *ScheduleHandler) UpsertWeekly(c *gin.Context) {
	barberID, ok := targetBarberID(c)
	if !ok {
		return
	}

	var req WeeklyScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	sched, err := h.store.UpsertWeekly(c.Request.Context(),
		barberID, *req.DayOfWeek, req.StartTime, req.EndTime, isActive)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sched)
}

func (h *ScheduleHandler) ListWeekly(c *gin.Context) {
	barberID, ok := paramUint(c, "barberId")
	if !ok {
		return
	}

	schedules, err := h.store.ListWeekly(c.Request.Context(), barberID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, schedules)
}

func (h *ScheduleHandler) DeactivateWeekly(c *gin.Context) {
	barberID, ok := targetBarberID(c)
	if !ok {
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	sched, err := h.store.DeactivateWeekly(c.Request.Context(), barberID, id)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, sched)
}

func (h *ScheduleHandler) UpsertOverride(c *gin.Context) {
	barberID, ok := targetBarberID(c)
	if !ok {
		return
	}

	var req schedule.OverrideInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	override, err := h.store.UpsertDateOverride(c.Request.Context(), barberID, req)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, override)
}

func (h *ScheduleHandler) ListOverrides(c *gin.Context) {
	barberID, ok := paramUint(c, "barberId")
	if !ok {
		return
	}

	overrides, err := h.store.ListDateOverrides(c.Request.Context(), barberID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, overrides)
}

func (h *ScheduleHandler) DeleteOverride(c *gin.Context) {
	barberID, ok := targetBarberID(c)
	if !ok {
		return
	}
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteDateOverride(c.Request.Context(), barberID, id); err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

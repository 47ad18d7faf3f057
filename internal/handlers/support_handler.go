package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/httpresp"
	"github.com/dcastillo-dev/barberbook/internal/middleware"
	ucSupport "github.com/dcastillo-dev/barberbook/internal/usecase/support"
)

type SupportHandler struct {
	service *ucSupport.Service
}

func NewSupportHandler(service *ucSupport.Service) *SupportHandler {
	return &SupportHandler{service: service}
}

type CreateTicketRequest struct {
	Subject string `json:"subject" binding:"required,max=150"`
	Message string `json:"message" binding:"required,max=2000"`
}

type UpdateTicketRequest struct {
	Status string `json:"status" binding:"required,oneof=in_progress closed"`
}

func (h *SupportHandler) Create(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ticket, err := h.service.Create(c.Request.Context(),
		c.GetUint(middleware.ContextUserID), req.Subject, req.Message)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *SupportHandler) ListMine(c *gin.Context) {
	tickets, err := h.service.ListForUser(c.Request.Context(),
		c.GetUint(middleware.ContextUserID))
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, tickets)
}

func (h *SupportHandler) ListAll(c *gin.Context) {
	tickets, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, tickets)
}

func (h *SupportHandler) UpdateStatus(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ticket, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, ticket)
}

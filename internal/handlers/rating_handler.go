package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/httpresp"
	"github.com/dcastillo-dev/barberbook/internal/middleware"
	ucRating "github.com/dcastillo-dev/barberbook/internal/usecase/rating"
)

type RatingHandler struct {
	service *ucRating.Service
}

func NewRatingHandler(service *ucRating.Service) *RatingHandler {
	return &RatingHandler{service: service}
}

type CreateRatingRequest struct {
	Score   int    `json:"score" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func (h *RatingHandler) Create(c *gin.Context) {
	appointmentID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req CreateRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rating, err := h.service.Create(c.Request.Context(),
		c.GetUint(middleware.ContextUserID),
		ucRating.CreateInput{
			AppointmentID: appointmentID,
			Score:         req.Score,
			Comment:       req.Comment,
		})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rating)
}

func (h *RatingHandler) ForBarber(c *gin.Context) {
	barberID, ok := paramUint(c, "barberId")
	if !ok {
		return
	}

	out, err := h.service.ForBarber(c.Request.Context(), barberID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, out)
}

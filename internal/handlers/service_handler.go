package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/httpresp"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,gt=0"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Active      *bool   `json:"active"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to create service")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	err := h.db.First(&svc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "service not found")
		return
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to load service")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMin = req.DurationMin
	svc.Price = req.Price
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to update service")
		return
	}
	httpresp.OK(c, svc)
}

// Deactivate retires a service from the catalog. Existing appointments keep
// their links, so it is never hard-deleted.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	err := h.db.First(&svc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "service not found")
		return
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to load service")
		return
	}

	if svc.Active {
		svc.Active = false
		if err := h.db.Save(&svc).Error; err != nil {
			httperr.Internal(c, "internal_error", "failed to deactivate service")
			return
		}
	}
	httpresp.OK(c, svc)
}

// ListActive is the public catalog.
func (h *ServiceHandler) ListActive(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = ?", true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list services")
		return
	}
	httpresp.List(c, services)
}

// ListBarbers is public: clients pick a barber before checking availability.
func (h *ServiceHandler) ListBarbers(c *gin.Context) {
	var barbers []models.User
	if err := h.db.
		Where("role = ?", models.RoleBarber).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list barbers")
		return
	}
	httpresp.List(c, barbers)
}

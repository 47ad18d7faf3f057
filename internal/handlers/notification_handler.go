package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dcastillo-dev/barberbook/internal/httperr"
	"github.com/dcastillo-dev/barberbook/internal/httpresp"
	"github.com/dcastillo-dev/barberbook/internal/middleware"
	"github.com/dcastillo-dev/barberbook/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) ListMine(c *gin.Context) {
	var notifications []models.Notification
	if err := h.db.
		Where("user_id = ?", c.GetUint(middleware.ContextUserID)).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list notifications")
		return
	}
	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var notification models.Notification
	err := h.db.
		Where("id = ? AND user_id = ?", id, c.GetUint(middleware.ContextUserID)).
		First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.NotFound(c, "not_found", "notification not found")
		return
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "failed to load notification")
		return
	}

	if !notification.Read {
		notification.Read = true
		if err := h.db.Save(&notification).Error; err != nil {
			httperr.Internal(c, "internal_error", "failed to update notification")
			return
		}
	}
	httpresp.OK(c, notification)
}

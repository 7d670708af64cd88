package handlers

import (
	"net/http"

	"househand/backend/internal/apperrors"
	"househand/backend/internal/middleware"
	"househand/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationHandler struct {
	db                  *gorm.DB
	notificationService services.NotificationService
}

func NewNotificationHandler(db *gorm.DB, notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{db: db, notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		apperrors.Respond(c, apperrors.Authentication("authentication required"))
		return
	}

	notifications, err := h.notificationService.ListNotifications(h.db, session.UserID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications, "total": len(notifications)})
}

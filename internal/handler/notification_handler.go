package handler

import (
	"errors"
	"net/http"

	"community-pulse/internal/middleware"
	"community-pulse/internal/service"
	apperrors "community-pulse/pkg/app_errors"
	"community-pulse/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/notifications", auth, h.List)
	r.PUT("/notifications/:id/read", auth, h.MarkRead)
}

func (h *NotificationHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	notifications, err := h.service.ListUnread(c, user.ID)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkRead(c, id, user.ID); err != nil {
		h.handleError(c, err, "MarkRead")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrNotificationNotFound):
		log.Warn("Notification not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

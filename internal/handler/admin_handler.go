package handler

import (
	"errors"
	"net/http"

	"community-pulse/internal/model"
	"community-pulse/internal/service"
	apperrors "community-pulse/pkg/app_errors"
	"community-pulse/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service service.AdminService
}

func NewAdminHandler(service service.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine, auth, requireAdmin gin.HandlerFunc) {
	router := r.Group("/admin", auth, requireAdmin)
	{
		router.GET("events/pending", h.ListPendingEvents)
		router.PUT("events/:id/approve", h.ApproveEvent)
		router.PUT("events/:id/reject", h.RejectEvent)
		router.GET("events/user/:id", h.ListUserEvents)
		router.GET("users", h.ListUsers)
		router.PUT("users/:id", h.UpdateUser)
	}
}

// AdminUserUpdateRequest 使用者旗標更新請求
type AdminUserUpdateRequest struct {
	IsAdmin             *bool `json:"is_admin"`
	IsVerifiedOrganizer *bool `json:"is_verified_organizer"`
	IsBanned            *bool `json:"is_banned"`
}

func (h *AdminHandler) ListPendingEvents(c *gin.Context) {
	events, err := h.service.ListPendingEvents(c)
	if err != nil {
		h.handleError(c, err, "ListPendingEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *AdminHandler) ApproveEvent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.ApproveEvent(c, id); err != nil {
		h.handleError(c, err, "ApproveEvent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event approved successfully"})
}

func (h *AdminHandler) RejectEvent(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.RejectEvent(c, id); err != nil {
		h.handleError(c, err, "RejectEvent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event rejected and deleted successfully"})
}

func (h *AdminHandler) ListUserEvents(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	events, err := h.service.ListEventsByOrganizerID(c, id)
	if err != nil {
		h.handleError(c, err, "ListUserEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c)
	if err != nil {
		h.handleError(c, err, "ListUsers")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req AdminUserUpdateRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	params := model.AdminUserUpdateParams{
		IsAdmin:             req.IsAdmin,
		IsVerifiedOrganizer: req.IsVerifiedOrganizer,
		IsBanned:            req.IsBanned,
	}

	if _, err := h.service.UpdateUserFlags(c, id, params); err != nil {
		h.handleError(c, err, "UpdateUser")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

func (h *AdminHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

package handler

import (
	"errors"
	"net/http"

	"community-pulse/internal/middleware"
	"community-pulse/internal/model"
	"community-pulse/internal/service"
	apperrors "community-pulse/pkg/app_errors"
	"community-pulse/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RegistrationHandler struct {
	service service.RegistrationService
}

func NewRegistrationHandler(service service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: service}
}

func (h *RegistrationHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/events/:id/registration-status", auth, h.GetStatus)
	r.POST("/events/:id/interest", auth, h.MarkInterest)
	r.POST("/events/:id/confirm-registration", auth, h.ConfirmRegistration)
	r.POST("/events/:id/cancel-registration", auth, h.CancelRegistration)
	r.GET("/my-registrations", auth, h.MyRegistrations)
}

func (h *RegistrationHandler) GetStatus(c *gin.Context) {
	user, eventID, ok := h.requireUserAndEvent(c)
	if !ok {
		return
	}

	status, err := h.service.GetStatus(c, eventID, user.ID)
	if err != nil {
		h.handleError(c, err, "GetStatus")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *RegistrationHandler) MarkInterest(c *gin.Context) {
	user, eventID, ok := h.requireUserAndEvent(c)
	if !ok {
		return
	}

	status, err := h.service.MarkInterest(c, eventID, user.ID)
	if err != nil {
		h.handleError(c, err, "MarkInterest")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *RegistrationHandler) ConfirmRegistration(c *gin.Context) {
	user, eventID, ok := h.requireUserAndEvent(c)
	if !ok {
		return
	}

	var req model.ConfirmRegistrationRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	// number_of_attendees 僅供顯示，名單長度才是唯一來源
	status, err := h.service.ConfirmRegistration(c, eventID, user.ID, req.Attendees)
	if err != nil {
		h.handleError(c, err, "ConfirmRegistration")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *RegistrationHandler) CancelRegistration(c *gin.Context) {
	user, eventID, ok := h.requireUserAndEvent(c)
	if !ok {
		return
	}

	status, err := h.service.CancelRegistration(c, eventID, user.ID)
	if err != nil {
		h.handleError(c, err, "CancelRegistration")
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *RegistrationHandler) MyRegistrations(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	registrations, err := h.service.ListByUserID(c, user.ID)
	if err != nil {
		h.handleError(c, err, "MyRegistrations")
		return
	}
	c.JSON(http.StatusOK, registrations)
}

func (h *RegistrationHandler) requireUserAndEvent(c *gin.Context) (*model.User, int, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, 0, false
	}

	eventID, ok := ParseIDParam(c, "id")
	if !ok {
		return nil, 0, false
	}

	return user, eventID, true
}

func (h *RegistrationHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"detail": "Event not found"})
	case errors.Is(err, apperrors.ErrNoAttendees),
		errors.Is(err, apperrors.ErrTooManyAttendees),
		errors.Is(err, apperrors.ErrEventNotApproved),
		errors.Is(err, apperrors.ErrRegistrationClosed),
		errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrInvalidTransition):
		log.Warn("Registration rejected")
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicateSubmission):
		log.Warn("Duplicate submission")
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

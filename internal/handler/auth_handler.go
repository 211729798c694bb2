package handler

import (
	"net/http"

	"community-pulse/internal/middleware"
	"community-pulse/internal/model"
	"community-pulse/internal/service"
	apperrors "community-pulse/pkg/app_errors"
	"community-pulse/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/users/me", auth, h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterUserRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, err := h.service.Register(c, req)
	if err != nil {
		h.handleError(c, err, "Register")
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	token, err := h.service.Login(c, req)
	if err != nil {
		h.handleError(c, err, "Login")
		return
	}

	c.JSON(http.StatusOK, token)
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case err == apperrors.ErrUserAlreadyExists:
		log.Warn("User already exists")
		c.JSON(http.StatusBadRequest, gin.H{"error": apperrors.ErrUserAlreadyExists.Error()})
	case err == apperrors.ErrInvalidCredentials:
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
	case err == apperrors.ErrUserBanned:
		log.Warn("Banned user login attempt")
		c.JSON(http.StatusForbidden, gin.H{"error": apperrors.ErrUserBanned.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

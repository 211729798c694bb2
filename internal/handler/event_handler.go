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

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	r.GET("/events", h.List)
	r.GET("/search", h.Search)
	r.GET("/events/:id/details", h.GetDetails)
	r.POST("/events", auth, h.Create)
	r.PUT("/events/:id", auth, h.Update)
	r.DELETE("/events/:id", auth, h.Delete)
	r.GET("/events/:id/registrations", auth, h.ListRegistrations)
	r.GET("/my-events", auth, h.MyEvents)
}

// ListEventsQuery 活動列表查詢參數
type ListEventsQuery struct {
	Category     string `form:"category"`
	Upcoming     bool   `form:"upcoming"`
	ApprovedOnly *bool  `form:"approved_only"`
}

func (h *EventHandler) List(c *gin.Context) {
	var query ListEventsQuery
	if err := BindQuery(c, &query); err != nil {
		return
	}

	filter := model.ListEventsFilter{
		Upcoming:     query.Upcoming,
		ApprovedOnly: query.ApprovedOnly == nil || *query.ApprovedOnly,
	}
	if query.Category != "" {
		category := model.Category(query.Category)
		filter.Category = &category
	}

	events, err := h.service.List(c, filter)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Search(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	events, err := h.service.Search(c, query)
	if err != nil {
		h.handleError(c, err, "Search")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetDetails(c *gin.Context) {
	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.service.GetDetails(c, id)
	if err != nil {
		h.handleError(c, err, "GetDetails")
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *EventHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	params := service.CreateEventParams{
		Title:             c.PostForm("title"),
		Description:       c.PostForm("description"),
		Location:          c.PostForm("location"),
		Category:          c.PostForm("category"),
		StartDate:         c.PostForm("start_date"),
		EndDate:           c.PostForm("end_date"),
		RegistrationStart: c.PostForm("registration_start"),
		RegistrationEnd:   c.PostForm("registration_end"),
	}
	if image, err := c.FormFile("image"); err == nil {
		params.Image = image
	}

	created, err := h.service.Create(c, user, params)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	input := service.UpdateEventInput{
		Title:             optionalForm(c, "title"),
		Description:       optionalForm(c, "description"),
		Location:          optionalForm(c, "location"),
		Category:          optionalForm(c, "category"),
		StartDate:         optionalForm(c, "start_date"),
		EndDate:           optionalForm(c, "end_date"),
		RegistrationStart: optionalForm(c, "registration_start"),
		RegistrationEnd:   optionalForm(c, "registration_end"),
	}
	if image, err := c.FormFile("image"); err == nil {
		input.Image = image
	}

	updated, err := h.service.Update(c, user, id, input)
	if err != nil {
		h.handleError(c, err, "Update")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c, user, id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (h *EventHandler) ListRegistrations(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	id, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	registrations, err := h.service.ListRegistrations(c, user, id)
	if err != nil {
		h.handleError(c, err, "ListRegistrations")
		return
	}
	c.JSON(http.StatusOK, registrations)
}

func (h *EventHandler) MyEvents(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	events, err := h.service.ListByOrganizerID(c, user.ID)
	if err != nil {
		h.handleError(c, err, "MyEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		log.Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"errors": validationErr.Fields})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		log.Warn("Forbidden")
		c.JSON(http.StatusForbidden, gin.H{"error": apperrors.ErrForbidden.Error()})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// optionalForm 區分「沒帶欄位」與「帶了空值」，只有帶了才回傳指標
func optionalForm(c *gin.Context, key string) *string {
	if value, ok := c.GetPostForm(key); ok {
		return &value
	}
	return nil
}

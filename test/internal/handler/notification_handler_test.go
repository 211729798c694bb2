package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"community-pulse/internal/handler"
	"community-pulse/internal/model"
	"community-pulse/test/internal/mocks/services"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupNotificationTestRouter(mockService *services.NotificationServiceMock, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	notificationHandler := handler.NewNotificationHandler(mockService)
	notificationHandler.RegisterRoutes(router, fakeAuth(user))

	return router
}

func TestListNotifications(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewNotificationServiceMock()
		router := setupNotificationTestRouter(mockService, testUser())

		mockService.On("ListUnread", mock.Anything, 2).Return([]*model.Notification{
			{ID: 1, EventID: 1, UserID: 2, Title: "Event Reminder", Type: model.NotificationTypeReminder},
		}, nil).Once()

		req, _ := http.NewRequest("GET", "/notifications", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestMarkNotificationRead(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewNotificationServiceMock()
		router := setupNotificationTestRouter(mockService, testUser())

		mockService.On("MarkRead", mock.Anything, 1, 2).Return(nil).Once()

		req, _ := http.NewRequest("PUT", "/notifications/1/read", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - not the recipient", func(t *testing.T) {
		mockService := services.NewNotificationServiceMock()
		router := setupNotificationTestRouter(mockService, testUser())

		mockService.On("MarkRead", mock.Anything, 9, 2).Return(apperrors.ErrNotificationNotFound).Once()

		req, _ := http.NewRequest("PUT", "/notifications/9/read", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

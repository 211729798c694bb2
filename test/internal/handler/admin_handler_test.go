package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"community-pulse/internal/handler"
	"community-pulse/internal/middleware"
	"community-pulse/internal/model"
	"community-pulse/test/internal/mocks/services"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupAdminTestRouter(mockService *services.AdminServiceMock, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	adminHandler := handler.NewAdminHandler(mockService)
	adminHandler.RegisterRoutes(router, fakeAuth(user), middleware.RequireAdmin())

	return router
}

func adminUser() *model.User {
	return &model.User{ID: 99, Username: "admin", IsAdmin: true}
}

func TestListPendingEvents(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, adminUser())

		mockService.On("ListPendingEvents", mock.Anything).Return([]*model.Event{{ID: 1}}, nil).Once()

		req, _ := http.NewRequest("GET", "/admin/events/pending", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - non-admin forbidden", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, testUser())

		req, _ := http.NewRequest("GET", "/admin/events/pending", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "ListPendingEvents", mock.Anything)
	})
}

func TestApproveEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, adminUser())

		mockService.On("ApproveEvent", mock.Anything, 1).Return(nil).Once()

		req, _ := http.NewRequest("PUT", "/admin/events/1/approve", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - event not found", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, adminUser())

		mockService.On("ApproveEvent", mock.Anything, 404).Return(apperrors.ErrEventNotFound).Once()

		req, _ := http.NewRequest("PUT", "/admin/events/404/approve", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRejectEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, adminUser())

		mockService.On("RejectEvent", mock.Anything, 1).Return(nil).Once()

		req, _ := http.NewRequest("PUT", "/admin/events/1/reject", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("Success - ban a user", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, adminUser())

		mockService.On("UpdateUserFlags", mock.Anything, 5, mock.MatchedBy(func(p model.AdminUserUpdateParams) bool {
			return p.IsBanned != nil && *p.IsBanned
		})).Return(&model.User{ID: 5, IsBanned: true}, nil).Once()

		body := map[string]bool{"is_banned": true}
		req := createJSONHTTPRequest("PUT", "/admin/users/5", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - empty body has nothing to update", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, adminUser())

		mockService.On("UpdateUserFlags", mock.Anything, 5, mock.Anything).Return(nil, apperrors.ErrInvalidInput).Once()

		req := createJSONHTTPRequest("PUT", "/admin/users/5", map[string]bool{})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, adminUser())

		mockService.On("ListUsers", mock.Anything).Return([]*model.User{{ID: 1}, {ID: 2}}, nil).Once()

		req, _ := http.NewRequest("GET", "/admin/users", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListUserEvents(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAdminServiceMock()
		router := setupAdminTestRouter(mockService, adminUser())

		mockService.On("ListEventsByOrganizerID", mock.Anything, 9).Return([]*model.Event{{ID: 1}}, nil).Once()

		req, _ := http.NewRequest("GET", "/admin/events/user/9", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

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

func setupAuthTestRouter(mockService *services.AuthServiceMock, user *model.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	authHandler := handler.NewAuthHandler(mockService)
	authHandler.RegisterRoutes(router, fakeAuth(user))

	return router
}

func TestRegister(t *testing.T) {
	registerRequest := model.RegisterUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Phone:    "555-0100",
		Password: "s3cret-pass",
	}

	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAuthServiceMock()
		router := setupAuthTestRouter(mockService, nil)

		mockService.On("Register", mock.Anything, registerRequest).Return(&model.User{
			ID: 1, Username: "alice", Email: "alice@example.com",
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/register", registerRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		// 密碼雜湊絕不回傳
		assert.NotContains(t, w.Body.String(), "password_hash")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - username taken", func(t *testing.T) {
		mockService := services.NewAuthServiceMock()
		router := setupAuthTestRouter(mockService, nil)

		mockService.On("Register", mock.Anything, registerRequest).Return(nil, apperrors.ErrUserAlreadyExists).Once()

		req := createJSONHTTPRequest("POST", "/register", registerRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Failed - BindingError", func(t *testing.T) {
		mockService := services.NewAuthServiceMock()
		router := setupAuthTestRouter(mockService, nil)

		req := createJSONHTTPRequest("POST", "/register", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Failed - invalid email rejected at binding", func(t *testing.T) {
		mockService := services.NewAuthServiceMock()
		router := setupAuthTestRouter(mockService, nil)

		body := map[string]string{
			"username": "alice", "email": "not-an-email", "phone": "555-0100", "password": "x",
		}
		req := createJSONHTTPRequest("POST", "/register", body)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	loginRequest := model.LoginRequest{Username: "alice", Password: "s3cret-pass"}

	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAuthServiceMock()
		router := setupAuthTestRouter(mockService, nil)

		mockService.On("Login", mock.Anything, loginRequest).Return(&model.TokenResponse{
			AccessToken: "signed-token",
			TokenType:   "bearer",
			User:        &model.User{ID: 1, Username: "alice"},
		}, nil).Once()

		req := createJSONHTTPRequest("POST", "/login", loginRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "signed-token")
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - invalid credentials", func(t *testing.T) {
		mockService := services.NewAuthServiceMock()
		router := setupAuthTestRouter(mockService, nil)

		mockService.On("Login", mock.Anything, loginRequest).Return(nil, apperrors.ErrInvalidCredentials).Once()

		req := createJSONHTTPRequest("POST", "/login", loginRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "incorrect username or password")
	})

	t.Run("Failed - banned user", func(t *testing.T) {
		mockService := services.NewAuthServiceMock()
		router := setupAuthTestRouter(mockService, nil)

		mockService.On("Login", mock.Anything, loginRequest).Return(nil, apperrors.ErrUserBanned).Once()

		req := createJSONHTTPRequest("POST", "/login", loginRequest)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMe(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := services.NewAuthServiceMock()
		router := setupAuthTestRouter(mockService, testUser())

		req, _ := http.NewRequest("GET", "/users/me", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice")
	})
}

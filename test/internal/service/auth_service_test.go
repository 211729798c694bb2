package service

import (
	"context"
	"testing"

	"community-pulse/config"
	"community-pulse/internal/model"
	"community-pulse/internal/service"
	"community-pulse/test/internal/mocks/repositories"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testAuthConfig = config.AuthConfig{
	JWTSecret:      "test-secret",
	TokenExpiryMin: 30,
}

func newAuthService() (service.AuthService, *repositories.UserRepositoryMock) {
	repo := repositories.NewUserRepositoryMock()
	return service.NewAuthService(repo, testAuthConfig), repo
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthServiceRegister(t *testing.T) {
	ctx := context.Background()
	req := model.RegisterUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Phone:    "555-0100",
		Password: "s3cret-pass",
	}

	t.Run("Success - stores a bcrypt hash instead of the password", func(t *testing.T) {
		svc, repo := newAuthService()
		repo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
			if u.PasswordHash == req.Password {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) == nil
		})).Return(&model.User{ID: 1, Username: "alice"}, nil)

		user, err := svc.Register(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		repo.AssertExpectations(t)
	})

	t.Run("Failed - username or email taken", func(t *testing.T) {
		svc, repo := newAuthService()
		repo.On("ExistsByUsernameOrEmail", ctx, "alice", "alice@example.com").Return(true, nil)

		_, err := svc.Register(ctx, req)

		assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthServiceLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - returns a signed bearer token", func(t *testing.T) {
		svc, repo := newAuthService()
		repo.On("FindByUsername", ctx, "alice").Return(&model.User{
			ID: 7, Username: "alice", PasswordHash: hashedPassword(t, "s3cret-pass"),
		}, nil)

		resp, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "s3cret-pass"})

		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)
		require.NotNil(t, resp.User)

		// token 必須能以同一把密鑰驗證，且 sub 指向登入的使用者
		parsed, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(testAuthConfig.JWTSecret), nil
		})
		require.NoError(t, err)
		sub, err := parsed.Claims.GetSubject()
		require.NoError(t, err)
		assert.Equal(t, "7", sub)
	})

	t.Run("Failed - unknown username maps to invalid credentials", func(t *testing.T) {
		svc, repo := newAuthService()
		repo.On("FindByUsername", ctx, "ghost").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, model.LoginRequest{Username: "ghost", Password: "whatever"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("Failed - wrong password", func(t *testing.T) {
		svc, repo := newAuthService()
		repo.On("FindByUsername", ctx, "alice").Return(&model.User{
			ID: 7, Username: "alice", PasswordHash: hashedPassword(t, "s3cret-pass"),
		}, nil)

		_, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "wrong"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("Failed - banned user cannot log in", func(t *testing.T) {
		svc, repo := newAuthService()
		repo.On("FindByUsername", ctx, "alice").Return(&model.User{
			ID: 7, Username: "alice", IsBanned: true, PasswordHash: hashedPassword(t, "s3cret-pass"),
		}, nil)

		_, err := svc.Login(ctx, model.LoginRequest{Username: "alice", Password: "s3cret-pass"})

		assert.ErrorIs(t, err, apperrors.ErrUserBanned)
	})
}

func TestAuthServiceGetUserByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc, repo := newAuthService()
		repo.On("FindByID", ctx, 7).Return(&model.User{ID: 7, Username: "alice"}, nil)

		user, err := svc.GetUserByID(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("Failed - not found", func(t *testing.T) {
		svc, repo := newAuthService()
		repo.On("FindByID", ctx, 404).Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.GetUserByID(ctx, 404)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

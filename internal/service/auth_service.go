package service

import (
	"context"
	"strconv"
	"time"

	"community-pulse/config"
	"community-pulse/internal/model"
	"community-pulse/internal/repository"
	apperrors "community-pulse/pkg/app_errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, req model.RegisterUserRequest) (*model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
}

type AuthServiceImpl struct {
	repo repository.UserRepository
	cfg  config.AuthConfig
}

func NewAuthService(repo repository.UserRepository, cfg config.AuthConfig) AuthService {
	return &AuthServiceImpl{repo: repo, cfg: cfg}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req model.RegisterUserRequest) (*model.User, error) {
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
	}
	return s.repo.Create(ctx, user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, req model.LoginRequest) (*model.TokenResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.IsBanned {
		return nil, apperrors.ErrUserBanned
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

func (s *AuthServiceImpl) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthServiceImpl) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.Itoa(user.ID),
		"iat": now.Unix(),
		"iss": "community-pulse",
		"exp": now.Add(time.Minute * time.Duration(s.cfg.TokenExpiryMin)).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

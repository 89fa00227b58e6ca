package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"rentaroom/config"
	"rentaroom/internal/domain"
	"rentaroom/internal/repository"
	"rentaroom/pkg/auth"
	"rentaroom/pkg/validator"
)

const (
	errInvalidCredentials = "Invalid email or password"
	errInvalidToken       = "Invalid or expired token"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID  int64  `json:"id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type AuthServiceImpl struct {
	userRepo  repository.UserRepository
	jwtConfig config.JWTConfig
	logger    *zap.Logger
}

func NewAuthService(userRepo repository.UserRepository, jwtConfig config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:  userRepo,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, dto domain.RegisterRequest) (*domain.AuthResponse, error) {
	user, err := createUser(ctx, s.userRepo, s.logger, domain.CreateUserDTO{
		Name:     dto.Name,
		Email:    dto.Email,
		Phone:    dto.Phone,
		Password: dto.Password,
	})
	if err != nil {
		return nil, err
	}

	return s.authResponse(*user)
}

func (s *AuthServiceImpl) Login(ctx context.Context, dto domain.LoginRequest) (*domain.AuthResponse, error) {
	if strings.TrimSpace(dto.Email) == "" || dto.Password == "" {
		return nil, domain.Validation("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, validator.NormalizeEmail(dto.Email))
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.Unauthorized(errInvalidCredentials)
		}
		s.logger.Error("ошибка поиска пользователя", zap.Error(err))
		return nil, domain.Internal("failed to log in")
	}

	ok, err := auth.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil {
		s.logger.Error("ошибка проверки пароля", zap.Int64("userId", user.ID), zap.Error(err))
		return nil, domain.Unauthorized(errInvalidCredentials)
	}
	if !ok {
		return nil, domain.Unauthorized(errInvalidCredentials)
	}

	return s.authResponse(*user)
}

func (s *AuthServiceImpl) authResponse(user domain.User) (*domain.AuthResponse, error) {
	token, err := s.IssueToken(user)
	if err != nil {
		s.logger.Error("ошибка генерации токена", zap.Int64("userId", user.ID), zap.Error(err))
		return nil, domain.Internal("failed to issue token")
	}

	return &domain.AuthResponse{User: user, Token: token}, nil
}

func (s *AuthServiceImpl) IssueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.SigningKey))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return signed, nil
}

func (s *AuthServiceImpl) ParseToken(_ context.Context, tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return []byte(s.jwtConfig.SigningKey), nil
	})
	if err != nil {
		s.logger.Debug("ошибка парсинга токена", zap.Error(err))
		return domain.Identity{}, domain.Unauthorized(errInvalidToken)
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return domain.Identity{}, domain.Unauthorized(errInvalidToken)
	}

	return domain.Identity{
		UserID:  claims.UserID,
		Email:   claims.Email,
		IsAdmin: claims.IsAdmin,
	}, nil
}

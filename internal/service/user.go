package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"rentaroom/internal/domain"
	"rentaroom/internal/repository"
	"rentaroom/pkg/auth"
	"rentaroom/pkg/validator"
)

const (
	errUserNotFound    = "User not found"
	errEmailRegistered = "Email already registered"
	errUserRequired    = "name, email and password are required"
	errPasswordTooLong = "password must be at most 72 bytes"
)

type UserServiceImpl struct {
	repo   repository.UserRepository
	logger *zap.Logger
}

func NewUserService(repo repository.UserRepository, logger *zap.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		repo:   repo,
		logger: logger,
	}
}

// Create is the admin variant of registration: same rules, but the caller may
// grant admin rights.
func (s *UserServiceImpl) Create(ctx context.Context, dto domain.CreateUserDTO) (*domain.User, error) {
	return createUser(ctx, s.repo, s.logger, dto)
}

// createUser validates, hashes the password and inserts the account. Shared by
// registration and admin creation.
func createUser(ctx context.Context, repo repository.UserRepository, logger *zap.Logger, dto domain.CreateUserDTO) (*domain.User, error) {
	dto.Name = strings.TrimSpace(dto.Name)
	dto.Phone = strings.TrimSpace(dto.Phone)
	if dto.Name == "" || strings.TrimSpace(dto.Email) == "" || dto.Password == "" {
		return nil, domain.Validation(errUserRequired)
	}
	if !validator.ValidateEmail(dto.Email) {
		return nil, domain.Validation("email is invalid")
	}
	dto.Email = validator.NormalizeEmail(dto.Email)

	if _, err := repo.GetByEmail(ctx, dto.Email); err == nil {
		return nil, domain.Conflict(errEmailRegistered)
	} else if !errors.Is(err, domain.ErrRecordNotFound) {
		logger.Error("ошибка проверки email", zap.String("email", dto.Email), zap.Error(err))
		return nil, domain.Internal("failed to create user")
	}

	hash, err := auth.HashPassword(dto.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, domain.Validation(errPasswordTooLong)
		}
		logger.Error("ошибка при хешировании пароля", zap.Error(err))
		return nil, domain.Internal("failed to create user")
	}
	dto.Password = hash

	user, err := repo.Create(ctx, dto)
	if err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			return nil, domain.Conflict(errEmailRegistered)
		}
		if errors.Is(err, domain.ErrInvalidValue) {
			return nil, domain.Validation(errInvalidValue)
		}
		logger.Error("ошибка создания пользователя", zap.String("email", dto.Email), zap.Error(err))
		return nil, domain.Internal("failed to create user")
	}

	logger.Info("пользователь создан", zap.Int64("id", user.ID), zap.Bool("isAdmin", user.IsAdmin))

	return user, nil
}

func (s *UserServiceImpl) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(id, err)
	}

	return user, nil
}

// UpdateProfile lets a user change their own name and phone. An empty name is
// ignored; phone is written whenever it is sent.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id int64, dto domain.UpdateProfileDTO) (*domain.User, error) {
	var update domain.UpdateUserDTO
	if name := strings.TrimSpace(dto.Name); name != "" {
		update.Name = &name
	}
	if dto.Phone != nil {
		phone := strings.TrimSpace(*dto.Phone)
		update.Phone = &phone
	}

	return s.update(ctx, id, update)
}

func (s *UserServiceImpl) AdminUpdate(ctx context.Context, id int64, dto domain.AdminUpdateUserDTO) (*domain.User, error) {
	update := domain.UpdateUserDTO{
		Phone:   dto.Phone,
		IsAdmin: dto.IsAdmin,
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, domain.Validation("name must not be empty")
		}
		update.Name = &name
	}

	if dto.Email != nil {
		if !validator.ValidateEmail(*dto.Email) {
			return nil, domain.Validation("email is invalid")
		}
		email := validator.NormalizeEmail(*dto.Email)
		update.Email = &email
	}

	if dto.Password != "" {
		hash, err := auth.HashPassword(dto.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, domain.Validation(errPasswordTooLong)
			}
			s.logger.Error("ошибка при хешировании пароля", zap.Int64("id", id), zap.Error(err))
			return nil, domain.Internal("failed to update user")
		}
		update.PasswordHash = &hash
	}

	return s.update(ctx, id, update)
}

func (s *UserServiceImpl) update(ctx context.Context, id int64, update domain.UpdateUserDTO) (*domain.User, error) {
	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			return nil, domain.Conflict(errEmailRegistered)
		}
		if errors.Is(err, domain.ErrInvalidValue) {
			return nil, domain.Validation(errInvalidValue)
		}
		return nil, s.lookupError(id, err)
	}

	return user, nil
}

func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return s.lookupError(id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.lookupError(id, err)
	}

	s.logger.Info("пользователь удален", zap.Int64("id", id))

	return nil
}

func (s *UserServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("ошибка получения списка пользователей", zap.Error(err))
		return nil, domain.Internal("failed to load users")
	}

	return users, nil
}

// EnsureAdmin creates an admin account or promotes an existing one with the
// same email. The boolean reports whether a new account was created.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.User, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, validator.NormalizeEmail(email))
	switch {
	case err == nil:
		if existing.IsAdmin {
			return existing, false, nil
		}
		isAdmin := true
		user, err := s.update(ctx, existing.ID, domain.UpdateUserDTO{IsAdmin: &isAdmin})
		if err != nil {
			return nil, false, err
		}
		s.logger.Info("пользователь назначен администратором", zap.Int64("id", user.ID))
		return user, false, nil
	case !errors.Is(err, domain.ErrRecordNotFound):
		s.logger.Error("ошибка поиска пользователя", zap.String("email", email), zap.Error(err))
		return nil, false, domain.Internal("failed to load user")
	}

	user, err := createUser(ctx, s.repo, s.logger, domain.CreateUserDTO{
		Name:     name,
		Email:    email,
		Password: password,
		IsAdmin:  true,
	})
	if err != nil {
		return nil, false, err
	}

	return user, true, nil
}

func (s *UserServiceImpl) lookupError(id int64, err error) error {
	if errors.Is(err, domain.ErrRecordNotFound) {
		return domain.NotFound(errUserNotFound)
	}
	s.logger.Error("ошибка работы с пользователем", zap.Int64("id", id), zap.Error(err))
	return domain.Internal("failed to process user")
}

package service

import (
	"context"
	"strings"

	"mingle/internal/entity"
	"mingle/internal/repository"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, displayName, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*entity.User, error)
}

type authService struct {
	users  repository.UserRepository
	logger *logger.Logger
}

func NewAuthService(users repository.UserRepository, logger *logger.Logger) AuthService {
	return &authService{users: users, logger: logger}
}

func (s *authService) Register(ctx context.Context, displayName, email, password string) (*entity.User, error) {
	displayName = strings.TrimSpace(displayName)
	email = strings.ToLower(strings.TrimSpace(email))

	if displayName == "" {
		return nil, apperr.InvalidArg("display name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.InvalidArg("a valid email is required")
	}
	if len(password) < 8 {
		return nil, apperr.InvalidArg("password must be at least 8 characters")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.ErrEmailTaken
	} else if apperr.CodeOf(err) != apperr.CodeNotFound {
		s.logger.Error("email lookup failed during registration", "err", err)
		return nil, apperr.Internal("registration failed")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("registration failed")
	}

	user := &entity.User{
		DisplayName:  displayName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		s.logger.Error("user creation failed", "email", email, "err", err)
		return nil, apperr.Internal("registration failed")
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, apperr.ErrInvalidCredentials
		}
		s.logger.Error("email lookup failed during login", "err", err)
		return nil, apperr.Internal("login failed")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	if user.IsSuspended {
		return nil, apperr.ErrUserSuspended
	}
	return user, nil
}

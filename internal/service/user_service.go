package service

import (
	"context"
	"time"

	"mingle/internal/entity"
	"mingle/internal/repository"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/google/uuid"
)

// PublicProfile is what any logged-in user may see about another user.
type PublicProfile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
	Bio         string    `json:"bio"`
	Gender      string    `json:"gender"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UserService interface {
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*PublicProfile, error)
	ListOthers(ctx context.Context, callerID uuid.UUID) ([]entity.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, displayName, bio, gender string) (*entity.User, error)
}

type userService struct {
	users  repository.UserRepository
	logger *logger.Logger
}

func NewUserService(users repository.UserRepository, logger *logger.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*PublicProfile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &PublicProfile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		Bio:         user.Bio,
		Gender:      user.Gender,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (s *userService) ListOthers(ctx context.Context, callerID uuid.UUID) ([]entity.Profile, error) {
	profiles, err := s.users.ListProfiles(ctx, callerID)
	if err != nil {
		s.logger.Error("listing users failed", "err", err)
		return nil, apperr.Internal("could not list users")
	}
	return profiles, nil
}

// UpdateProfile leaves any empty field unchanged.
func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName, bio, gender string) (*entity.User, error) {
	fields := map[string]any{}
	if displayName != "" {
		fields["display_name"] = displayName
	}
	if bio != "" {
		fields["bio"] = bio
	}
	if gender != "" {
		fields["gender"] = gender
	}

	if len(fields) > 0 {
		if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
			if apperr.CodeOf(err) == apperr.CodeNotFound {
				return nil, err
			}
			s.logger.Error("profile update failed", "user", userID, "err", err)
			return nil, apperr.Internal("could not update profile")
		}
	}
	return s.users.GetByID(ctx, userID)
}

package service

import (
	"context"

	"mingle/internal/entity"
	"mingle/internal/repository"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const activityFeedLimit = 5

// suspiciousKeywords flags content for manual review, nothing more.
var suspiciousKeywords = []string{"spam", "scam", "hate", "money", "free", "click"}

type DashboardStats struct {
	Users    int64 `json:"users"`
	Posts    int64 `json:"posts"`
	Messages int64 `json:"messages"`
}

type SystemActivity struct {
	Posts    []*entity.Post    `json:"posts"`
	Messages []*entity.Message `json:"messages"`
}

type UserDetails struct {
	User     *entity.User      `json:"user"`
	Posts    []*entity.Post    `json:"posts"`
	Messages []*entity.Message `json:"messages"`
}

type AdminService interface {
	Login(ctx context.Context, email, password string) (*entity.User, error)
	Stats(ctx context.Context) (*DashboardStats, error)
	ListUsers(ctx context.Context) ([]*entity.User, error)
	UserDetails(ctx context.Context, userID uuid.UUID) (*UserDetails, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	// ToggleSuspend flips the suspension flag and reports the new state.
	ToggleSuspend(ctx context.Context, userID uuid.UUID) (suspended bool, err error)
	Activity(ctx context.Context) (*SystemActivity, error)
	UpdatePost(ctx context.Context, postID uuid.UUID, content string) (*entity.Post, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	SuspiciousContent(ctx context.Context) (*SystemActivity, error)
}

type adminService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	messages repository.MessageRepository
	logger   *logger.Logger
}

func NewAdminService(users repository.UserRepository, posts repository.PostRepository, messages repository.MessageRepository, logger *logger.Logger) AdminService {
	return &adminService{
		users:    users,
		posts:    posts,
		messages: messages,
		logger:   logger,
	}
}

func (s *adminService) Login(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return nil, apperr.ErrInvalidCredentials
		}
		s.logger.Error("admin login lookup failed", "err", err)
		return nil, apperr.Internal("login failed")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrInvalidCredentials
	}
	if user.Role != entity.RoleAdmin {
		return nil, apperr.ErrAdminsOnly
	}
	return user, nil
}

func (s *adminService) Stats(ctx context.Context) (*DashboardStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, apperr.Internal("could not load stats")
	}
	posts, err := s.posts.Count(ctx)
	if err != nil {
		return nil, apperr.Internal("could not load stats")
	}
	messages, err := s.messages.Count(ctx)
	if err != nil {
		return nil, apperr.Internal("could not load stats")
	}
	return &DashboardStats{Users: users, Posts: posts, Messages: messages}, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		s.logger.Error("listing users failed", "err", err)
		return nil, apperr.Internal("could not list users")
	}
	return users, nil
}

func (s *adminService) UserDetails(ctx context.Context, userID uuid.UUID) (*UserDetails, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("could not load user details")
	}
	messages, err := s.messages.FindBySender(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("could not load user details")
	}
	return &UserDetails{User: user, Posts: posts, Messages: messages}, nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.users.Delete(ctx, userID)
}

func (s *adminService) ToggleSuspend(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}

	user.IsSuspended = !user.IsSuspended
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Error("suspend toggle failed", "user", userID, "err", err)
		return false, apperr.Internal("could not update user")
	}
	return user.IsSuspended, nil
}

func (s *adminService) Activity(ctx context.Context) (*SystemActivity, error) {
	posts, err := s.posts.FindRecent(ctx, activityFeedLimit)
	if err != nil {
		return nil, apperr.Internal("could not load activity")
	}
	messages, err := s.messages.FindRecent(ctx, activityFeedLimit)
	if err != nil {
		return nil, apperr.Internal("could not load activity")
	}
	return &SystemActivity{Posts: posts, Messages: messages}, nil
}

func (s *adminService) UpdatePost(ctx context.Context, postID uuid.UUID, content string) (*entity.Post, error) {
	if content == "" {
		return nil, apperr.InvalidArg("post content is required")
	}
	if err := s.posts.UpdateContent(ctx, postID, content); err != nil {
		return nil, err
	}
	return s.posts.GetByID(ctx, postID)
}

func (s *adminService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	return s.posts.Delete(ctx, postID)
}

func (s *adminService) SuspiciousContent(ctx context.Context) (*SystemActivity, error) {
	posts, err := s.posts.FindByKeywords(ctx, suspiciousKeywords, 10)
	if err != nil {
		return nil, apperr.Internal("could not scan posts")
	}
	messages, err := s.messages.FindByKeywords(ctx, suspiciousKeywords, 10)
	if err != nil {
		return nil, apperr.Internal("could not scan messages")
	}
	return &SystemActivity{Posts: posts, Messages: messages}, nil
}

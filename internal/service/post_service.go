package service

import (
	"context"
	"strings"
	"time"

	"mingle/internal/entity"
	"mingle/internal/repository"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/google/uuid"
)

type PostService interface {
	List(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error)
	Create(ctx context.Context, userID uuid.UUID, content, image string) (*entity.Post, error)
	// ToggleLike likes an unliked post and unlikes a liked one; liking
	// someone else's post notifies the author.
	ToggleLike(ctx context.Context, userID, postID uuid.UUID) (liked bool, err error)
	AddComment(ctx context.Context, userID, postID uuid.UUID, content string) (*entity.Comment, error)
	Comments(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error)
}

type postService struct {
	posts         repository.PostRepository
	notifications repository.NotificationRepository
	logger        *logger.Logger
}

func NewPostService(posts repository.PostRepository, notifications repository.NotificationRepository, logger *logger.Logger) PostService {
	return &postService{
		posts:         posts,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *postService) List(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error) {
	posts, err := s.posts.List(ctx, authorID)
	if err != nil {
		s.logger.Error("listing posts failed", "err", err)
		return nil, apperr.Internal("could not load posts")
	}
	return posts, nil
}

func (s *postService) Create(ctx context.Context, userID uuid.UUID, content, image string) (*entity.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.InvalidArg("post content is required")
	}

	post, err := s.posts.Create(ctx, &entity.Post{
		UserID:    userID,
		Content:   content,
		Image:     image,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("post creation failed", "user", userID, "err", err)
		return nil, apperr.Internal("could not create post")
	}
	return post, nil
}

func (s *postService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}

	existing, err := s.posts.FindLike(ctx, userID, postID)
	if err != nil {
		s.logger.Error("like lookup failed", "user", userID, "post", postID, "err", err)
		return false, apperr.Internal("could not toggle like")
	}

	if existing != nil {
		if err := s.posts.DeleteLike(ctx, existing.ID); err != nil {
			s.logger.Error("unlike failed", "like", existing.ID, "err", err)
			return false, apperr.Internal("could not toggle like")
		}
		return false, nil
	}

	if err := s.posts.CreateLike(ctx, &entity.Like{UserID: userID, PostID: postID}); err != nil {
		s.logger.Error("like failed", "user", userID, "post", postID, "err", err)
		return false, apperr.Internal("could not toggle like")
	}
	s.notify(ctx, post.UserID, userID, entity.NotificationLike, post.ID)
	return true, nil
}

func (s *postService) AddComment(ctx context.Context, userID, postID uuid.UUID, content string) (*entity.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.InvalidArg("comment content is required")
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment, err := s.posts.CreateComment(ctx, &entity.Comment{
		UserID:    userID,
		PostID:    postID,
		Content:   content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Error("comment creation failed", "user", userID, "post", postID, "err", err)
		return nil, apperr.Internal("could not add comment")
	}
	s.notify(ctx, post.UserID, userID, entity.NotificationComment, post.ID)
	return comment, nil
}

func (s *postService) Comments(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error) {
	comments, err := s.posts.ListComments(ctx, postID)
	if err != nil {
		s.logger.Error("listing comments failed", "post", postID, "err", err)
		return nil, apperr.Internal("could not load comments")
	}
	return comments, nil
}

// notify records a notification for the post author unless they acted on
// their own post. Failures never surface to the caller.
func (s *postService) notify(ctx context.Context, ownerID, actorID uuid.UUID, kind string, referenceID uuid.UUID) {
	if ownerID == actorID {
		return
	}
	err := s.notifications.Create(ctx, &entity.Notification{
		UserID:      ownerID,
		ActorID:     actorID,
		Type:        kind,
		ReferenceID: referenceID,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		s.logger.Warn("notification not recorded", "type", kind, "owner", ownerID, "err", err)
	}
}

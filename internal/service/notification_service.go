package service

import (
	"context"

	"mingle/internal/entity"
	"mingle/internal/repository"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/google/uuid"
)

type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*entity.Notification, error)
}

type notificationService struct {
	notifications repository.NotificationRepository
	logger        *logger.Logger
}

func NewNotificationService(notifications repository.NotificationRepository, logger *logger.Logger) NotificationService {
	return &notificationService{notifications: notifications, logger: logger}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	notifications, err := s.notifications.ListForUser(ctx, userID)
	if err != nil {
		s.logger.Error("listing notifications failed", "user", userID, "err", err)
		return nil, apperr.Internal("could not load notifications")
	}
	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) (*entity.Notification, error) {
	notification, err := s.notifications.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification.UserID != userID {
		return nil, apperr.ErrNotOwner
	}

	notification.IsRead = true
	if err := s.notifications.Save(ctx, notification); err != nil {
		s.logger.Error("saving notification failed", "notification", notificationID, "err", err)
		return nil, apperr.Internal("could not update notification")
	}
	return notification, nil
}

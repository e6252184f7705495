package repository

import (
	"context"

	"mingle/internal/entity"
	apperr "mingle/pkg/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	Save(ctx context.Context, notification *entity.Notification) error
}

type SQLiteNotificationRepository struct {
	db *gorm.DB
}

func NewSQLiteNotificationRepository(db *gorm.DB) NotificationRepository {
	return &SQLiteNotificationRepository{db}
}

func (repo *SQLiteNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if err := repo.db.WithContext(ctx).Create(notification).Error; err != nil {
		return errors.Wrap(err, "notificationRepo.Create")
	}
	return nil
}

func (repo *SQLiteNotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Notification, error) {
	var notifications []*entity.Notification
	err := repo.db.WithContext(ctx).
		Preload("Actor", profileColumns).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, "notificationRepo.ListForUser")
	}
	return notifications, nil
}

func (repo *SQLiteNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	var notification entity.Notification
	err := repo.db.WithContext(ctx).First(&notification, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotificationNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "notificationRepo.GetByID")
	}
	return &notification, nil
}

func (repo *SQLiteNotificationRepository) Save(ctx context.Context, notification *entity.Notification) error {
	if err := repo.db.WithContext(ctx).Save(notification).Error; err != nil {
		return errors.Wrap(err, "notificationRepo.Save")
	}
	return nil
}

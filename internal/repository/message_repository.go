package repository

import (
	"context"

	"mingle/internal/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type MessageRepository interface {
	// FindByParticipant returns every message the user sent or received,
	// newest first, with counterparty public identity joined.
	FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error)
	FindThread(ctx context.Context, userID, otherID uuid.UUID) ([]*entity.Message, error)
	Create(ctx context.Context, message *entity.Message) (*entity.Message, error)
	// BulkMarkRead flips every unread message from sender to receiver in a
	// single atomic update and reports how many rows changed.
	BulkMarkRead(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error)
	// SearchVisible matches content case-insensitively but only within the
	// user's own conversations.
	SearchVisible(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*entity.Message, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Message, error)
	FindBySender(ctx context.Context, senderID uuid.UUID) ([]*entity.Message, error)
	// FindByKeywords matches content against any of the given keywords.
	FindByKeywords(ctx context.Context, keywords []string, limit int) ([]*entity.Message, error)
	Count(ctx context.Context) (int64, error)
}

type SQLiteMessageRepository struct {
	db *gorm.DB
}

func NewSQLiteMessageRepository(db *gorm.DB) MessageRepository {
	return &SQLiteMessageRepository{db}
}

func (repo *SQLiteMessageRepository) withParties(db *gorm.DB) *gorm.DB {
	return db.Preload("Sender", profileColumns).Preload("Receiver", profileColumns)
}

func (repo *SQLiteMessageRepository) FindByParticipant(ctx context.Context, userID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.withParties(repo.db.WithContext(ctx)).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.FindByParticipant")
	}
	return messages, nil
}

func (repo *SQLiteMessageRepository) FindThread(ctx context.Context, userID, otherID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.withParties(repo.db.WithContext(ctx)).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.FindThread")
	}
	return messages, nil
}

func (repo *SQLiteMessageRepository) Create(ctx context.Context, message *entity.Message) (*entity.Message, error) {
	if err := repo.db.WithContext(ctx).Create(message).Error; err != nil {
		return nil, errors.Wrap(err, "messageRepo.Create")
	}

	var full entity.Message
	err := repo.withParties(repo.db.WithContext(ctx)).First(&full, "id = ?", message.ID).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.Create.Reload")
	}
	return &full, nil
}

func (repo *SQLiteMessageRepository) BulkMarkRead(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error) {
	res := repo.db.WithContext(ctx).Model(&entity.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", senderID, receiverID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "messageRepo.BulkMarkRead")
	}
	return res.RowsAffected, nil
}

func (repo *SQLiteMessageRepository) SearchVisible(ctx context.Context, userID uuid.UUID, query string, limit int) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.withParties(repo.db.WithContext(ctx)).
		Where("LOWER(content) LIKE ?", likePattern(query)).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.SearchVisible")
	}
	return messages, nil
}

func (repo *SQLiteMessageRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.withParties(repo.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.FindRecent")
	}
	return messages, nil
}

func (repo *SQLiteMessageRepository) FindBySender(ctx context.Context, senderID uuid.UUID) ([]*entity.Message, error) {
	var messages []*entity.Message
	err := repo.db.WithContext(ctx).Preload("Receiver", profileColumns).
		Where("sender_id = ?", senderID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.FindBySender")
	}
	return messages, nil
}

func (repo *SQLiteMessageRepository) FindByKeywords(ctx context.Context, keywords []string, limit int) ([]*entity.Message, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	cond := repo.db.Where("LOWER(content) LIKE ?", likePattern(keywords[0]))
	for _, k := range keywords[1:] {
		cond = cond.Or("LOWER(content) LIKE ?", likePattern(k))
	}

	var messages []*entity.Message
	err := repo.withParties(repo.db.WithContext(ctx)).
		Where(cond).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.FindByKeywords")
	}
	return messages, nil
}

func (repo *SQLiteMessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&entity.Message{}).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "messageRepo.Count")
	}
	return count, nil
}

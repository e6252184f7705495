package repository

import (
	"context"
	"time"

	"mingle/internal/entity"
	apperr "mingle/pkg/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SearchHistoryRepository interface {
	// UpsertTouch inserts the (user, query) pair or, if it already exists,
	// refreshes updated_at. Single conflict-resolving write so concurrent
	// identical searches cannot produce duplicate rows.
	UpsertTouch(ctx context.Context, userID uuid.UUID, query string) error
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.SearchHistory, error)
	DeleteAll(ctx context.Context, userID uuid.UUID) error
	DeleteOne(ctx context.Context, userID uuid.UUID, id uint) error
}

type SQLiteSearchHistoryRepository struct {
	db *gorm.DB
}

func NewSQLiteSearchHistoryRepository(db *gorm.DB) SearchHistoryRepository {
	return &SQLiteSearchHistoryRepository{db}
}

func (repo *SQLiteSearchHistoryRepository) UpsertTouch(ctx context.Context, userID uuid.UUID, query string) error {
	entry := entity.SearchHistory{UserID: userID, Query: query}
	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "query"}},
		DoUpdates: clause.Assignments(map[string]any{"updated_at": time.Now()}),
	}).Create(&entry).Error
	if err != nil {
		return errors.Wrap(err, "historyRepo.UpsertTouch")
	}
	return nil
}

func (repo *SQLiteSearchHistoryRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.SearchHistory, error) {
	var entries []*entity.SearchHistory
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, errors.Wrap(err, "historyRepo.ListRecent")
	}
	return entries, nil
}

func (repo *SQLiteSearchHistoryRepository) DeleteAll(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.SearchHistory{}).Error
	if err != nil {
		return errors.Wrap(err, "historyRepo.DeleteAll")
	}
	return nil
}

// DeleteOne keeps the ownership check inside the delete predicate. Checking
// first and deleting after would race with a concurrent delete.
func (repo *SQLiteSearchHistoryRepository) DeleteOne(ctx context.Context, userID uuid.UUID, id uint) error {
	res := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&entity.SearchHistory{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "historyRepo.DeleteOne")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrHistoryItemNotFound
	}
	return nil
}

package repository

import (
	"context"

	"mingle/internal/entity"
	apperr "mingle/pkg/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
	UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListProfiles(ctx context.Context, exclude uuid.UUID) ([]entity.Profile, error)
	// SearchProfiles matches display name or email case-insensitively and
	// returns public fields only.
	SearchProfiles(ctx context.Context, query string, limit int) ([]entity.Profile, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
	Count(ctx context.Context) (int64, error)
}

type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) UserRepository {
	return &SQLiteUserRepository{db}
}

func (repo *SQLiteUserRepository) Create(ctx context.Context, user *entity.User) error {
	if err := repo.db.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(err, "userRepo.Create")
	}
	return nil
}

func (repo *SQLiteUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := repo.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "userRepo.GetByID")
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := repo.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "userRepo.GetByEmail")
	}
	return &user, nil
}

func (repo *SQLiteUserRepository) Save(ctx context.Context, user *entity.User) error {
	if err := repo.db.WithContext(ctx).Save(user).Error; err != nil {
		return errors.Wrap(err, "userRepo.Save")
	}
	return nil
}

func (repo *SQLiteUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := repo.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return errors.Wrap(res.Error, "userRepo.UpdateProfile")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrUserNotFound
	}
	return nil
}

func (repo *SQLiteUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := repo.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "userRepo.Delete")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrUserNotFound
	}
	return nil
}

func (repo *SQLiteUserRepository) ListProfiles(ctx context.Context, exclude uuid.UUID) ([]entity.Profile, error) {
	var profiles []entity.Profile
	q := repo.db.WithContext(ctx).Model(&entity.User{}).Select("id", "display_name", "avatar")
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Find(&profiles).Error; err != nil {
		return nil, errors.Wrap(err, "userRepo.ListProfiles")
	}
	return profiles, nil
}

func (repo *SQLiteUserRepository) SearchProfiles(ctx context.Context, query string, limit int) ([]entity.Profile, error) {
	var profiles []entity.Profile
	err := repo.db.WithContext(ctx).Model(&entity.User{}).
		Select("id", "display_name", "avatar").
		Where("LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", likePattern(query), likePattern(query)).
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, errors.Wrap(err, "userRepo.SearchProfiles")
	}
	return profiles, nil
}

func (repo *SQLiteUserRepository) ListAll(ctx context.Context) ([]*entity.User, error) {
	var users []*entity.User
	if err := repo.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "userRepo.ListAll")
	}
	return users, nil
}

func (repo *SQLiteUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "userRepo.Count")
	}
	return count, nil
}

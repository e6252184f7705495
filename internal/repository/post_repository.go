package repository

import (
	"context"

	"mingle/internal/entity"
	apperr "mingle/pkg/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type PostRepository interface {
	List(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	Create(ctx context.Context, post *entity.Post) (*entity.Post, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error)
	// SearchWithAuthor matches content case-insensitively, newest first,
	// author public fields joined.
	SearchWithAuthor(ctx context.Context, query string, limit int) ([]*entity.Post, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Post, error)
	// FindByKeywords matches content against any of the given keywords.
	FindByKeywords(ctx context.Context, keywords []string, limit int) ([]*entity.Post, error)
	Count(ctx context.Context) (int64, error)

	FindLike(ctx context.Context, userID, postID uuid.UUID) (*entity.Like, error)
	CreateLike(ctx context.Context, like *entity.Like) error
	DeleteLike(ctx context.Context, id uuid.UUID) error

	CreateComment(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error)
}

type SQLitePostRepository struct {
	db *gorm.DB
}

func NewSQLitePostRepository(db *gorm.DB) PostRepository {
	return &SQLitePostRepository{db}
}

func (repo *SQLitePostRepository) List(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error) {
	var posts []*entity.Post
	q := repo.db.WithContext(ctx).
		Preload("User", profileColumns).
		Preload("Likes").
		Preload("Comments").
		Order("created_at DESC")
	if authorID != uuid.Nil {
		q = q.Where("user_id = ?", authorID)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "postRepo.List")
	}
	return posts, nil
}

func (repo *SQLitePostRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Post, error) {
	var post entity.Post
	err := repo.db.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrPostNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.GetByID")
	}
	return &post, nil
}

func (repo *SQLitePostRepository) Create(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	if err := repo.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, errors.Wrap(err, "postRepo.Create")
	}

	var full entity.Post
	err := repo.db.WithContext(ctx).Preload("User", profileColumns).First(&full, "id = ?", post.ID).Error
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.Create.Reload")
	}
	return &full, nil
}

func (repo *SQLitePostRepository) UpdateContent(ctx context.Context, id uuid.UUID, content string) error {
	res := repo.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return errors.Wrap(res.Error, "postRepo.UpdateContent")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrPostNotFound
	}
	return nil
}

func (repo *SQLitePostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := repo.db.WithContext(ctx).Delete(&entity.Post{}, "id = ?", id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "postRepo.Delete")
	}
	if res.RowsAffected == 0 {
		return apperr.ErrPostNotFound
	}
	return nil
}

func (repo *SQLitePostRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", authorID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.ListByAuthor")
	}
	return posts, nil
}

func (repo *SQLitePostRepository) SearchWithAuthor(ctx context.Context, query string, limit int) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := repo.db.WithContext(ctx).
		Preload("User", profileColumns).
		Where("LOWER(content) LIKE ?", likePattern(query)).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.SearchWithAuthor")
	}
	return posts, nil
}

func (repo *SQLitePostRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Post, error) {
	var posts []*entity.Post
	err := repo.db.WithContext(ctx).
		Preload("User", profileColumns).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.FindRecent")
	}
	return posts, nil
}

func (repo *SQLitePostRepository) FindByKeywords(ctx context.Context, keywords []string, limit int) ([]*entity.Post, error) {
	if len(keywords) == 0 {
		return nil, nil
	}
	cond := repo.db.Where("LOWER(content) LIKE ?", likePattern(keywords[0]))
	for _, k := range keywords[1:] {
		cond = cond.Or("LOWER(content) LIKE ?", likePattern(k))
	}

	var posts []*entity.Post
	err := repo.db.WithContext(ctx).
		Preload("User", profileColumns).
		Where(cond).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.FindByKeywords")
	}
	return posts, nil
}

func (repo *SQLitePostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&entity.Post{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "postRepo.Count")
	}
	return count, nil
}

func (repo *SQLitePostRepository) FindLike(ctx context.Context, userID, postID uuid.UUID) (*entity.Like, error) {
	var like entity.Like
	err := repo.db.WithContext(ctx).First(&like, "user_id = ? AND post_id = ?", userID, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.FindLike")
	}
	return &like, nil
}

func (repo *SQLitePostRepository) CreateLike(ctx context.Context, like *entity.Like) error {
	if err := repo.db.WithContext(ctx).Create(like).Error; err != nil {
		return errors.Wrap(err, "postRepo.CreateLike")
	}
	return nil
}

func (repo *SQLitePostRepository) DeleteLike(ctx context.Context, id uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Delete(&entity.Like{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "postRepo.DeleteLike")
	}
	return nil
}

func (repo *SQLitePostRepository) CreateComment(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	if err := repo.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, errors.Wrap(err, "postRepo.CreateComment")
	}

	var full entity.Comment
	err := repo.db.WithContext(ctx).Preload("User", profileColumns).First(&full, "id = ?", comment.ID).Error
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.CreateComment.Reload")
	}
	return &full, nil
}

func (repo *SQLitePostRepository) ListComments(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	err := repo.db.WithContext(ctx).
		Preload("User", profileColumns).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "postRepo.ListComments")
	}
	return comments, nil
}

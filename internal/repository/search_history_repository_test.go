package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"mingle/internal/entity"
	apperr "mingle/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newHistoryDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "history.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.SearchHistory{}))
	return db
}

func countRows(t *testing.T, db *gorm.DB, userID uuid.UUID, query string) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&entity.SearchHistory{}).
		Where("user_id = ? AND query = ?", userID, query).
		Count(&count).Error)
	return count
}

func TestUpsertTouch_RepeatKeepsOneRow(t *testing.T) {
	db := newHistoryDB(t)
	repo := NewSQLiteSearchHistoryRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.UpsertTouch(ctx, userID, "foo"))

	entries, err := repo.ListRecent(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	firstTouch := entries[0].UpdatedAt

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, repo.UpsertTouch(ctx, userID, "foo"))

	entries, err = repo.ListRecent(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "foo", entries[0].Query)
	assert.True(t, entries[0].UpdatedAt.After(firstTouch), "repeat search must refresh updated_at")
}

func TestUpsertTouch_ConcurrentIdenticalSearches(t *testing.T) {
	db := newHistoryDB(t)
	repo := NewSQLiteSearchHistoryRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			return repo.UpsertTouch(ctx, userID, "foo")
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(1), countRows(t, db, userID, "foo"))
}

func TestUpsertTouch_DistinctQueriesAndUsersKeepOwnRows(t *testing.T) {
	db := newHistoryDB(t)
	repo := NewSQLiteSearchHistoryRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	require.NoError(t, repo.UpsertTouch(ctx, userID, "foo"))
	require.NoError(t, repo.UpsertTouch(ctx, userID, "bar"))
	require.NoError(t, repo.UpsertTouch(ctx, otherID, "foo"))

	entries, err := repo.ListRecent(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Most recently touched first.
	assert.Equal(t, "bar", entries[0].Query)
	assert.Equal(t, "foo", entries[1].Query)

	entries, err = repo.ListRecent(ctx, otherID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDeleteOne_ForeignRowUntouched(t *testing.T) {
	db := newHistoryDB(t)
	repo := NewSQLiteSearchHistoryRepository(db)
	ctx := context.Background()
	ownerID := uuid.New()

	require.NoError(t, repo.UpsertTouch(ctx, ownerID, "foo"))
	entries, err := repo.ListRecent(ctx, ownerID, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	err = repo.DeleteOne(ctx, uuid.New(), entries[0].ID)
	assert.ErrorIs(t, err, apperr.ErrHistoryItemNotFound)
	assert.Equal(t, int64(1), countRows(t, db, ownerID, "foo"))

	require.NoError(t, repo.DeleteOne(ctx, ownerID, entries[0].ID))
	assert.Equal(t, int64(0), countRows(t, db, ownerID, "foo"))
}

func TestDeleteAll(t *testing.T) {
	db := newHistoryDB(t)
	repo := NewSQLiteSearchHistoryRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	require.NoError(t, repo.UpsertTouch(ctx, userID, "foo"))
	require.NoError(t, repo.UpsertTouch(ctx, userID, "bar"))
	require.NoError(t, repo.UpsertTouch(ctx, otherID, "foo"))

	require.NoError(t, repo.DeleteAll(ctx, userID))

	entries, err := repo.ListRecent(ctx, userID, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, int64(1), countRows(t, db, otherID, "foo"))
}

package service

import (
	"context"
	"testing"
	"time"

	"mingle/internal/entity"
	"mingle/internal/repository/mocks"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type searchFixture struct {
	users    *mocks.MockUserRepository
	posts    *mocks.MockPostRepository
	messages *mocks.MockMessageRepository
	history  *mocks.MockSearchHistoryRepository
	svc      SearchService
}

func newSearchFixture(t *testing.T) *searchFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &searchFixture{
		users:    mocks.NewMockUserRepository(ctrl),
		posts:    mocks.NewMockPostRepository(ctrl),
		messages: mocks.NewMockMessageRepository(ctrl),
		history:  mocks.NewMockSearchHistoryRepository(ctrl),
	}
	f.svc = NewSearchService(f.users, f.posts, f.messages, f.history, logger.NewNop())
	return f
}

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "foo", NormalizeQuery("  Foo "))
	assert.Equal(t, "foo bar", NormalizeQuery("FOO BAR"))
	assert.Equal(t, "", NormalizeQuery("   "))
}

func TestSearch_BlankQuery(t *testing.T) {
	f := newSearchFixture(t)

	// No repository calls expected, and nothing recorded in history.
	results, err := f.svc.Search(context.Background(), uuid.New(), "   ")
	require.NoError(t, err)
	assert.Empty(t, results.Users)
	assert.Empty(t, results.Posts)
	assert.Empty(t, results.Messages)
	assert.NotNil(t, results.Users)
	assert.NotNil(t, results.Posts)
	assert.NotNil(t, results.Messages)
}

func TestSearch_FansOutAndRecordsHistory(t *testing.T) {
	f := newSearchFixture(t)
	userID := uuid.New()

	profiles := []entity.Profile{{ID: uuid.New(), DisplayName: "Foo Fan"}}
	posts := []*entity.Post{{ID: uuid.New(), Content: "all about foo"}}
	messages := []*entity.Message{{ID: uuid.New(), Content: "foo?"}}

	f.users.EXPECT().SearchProfiles(gomock.Any(), "foo", searchResultLimit).Return(profiles, nil)
	f.posts.EXPECT().SearchWithAuthor(gomock.Any(), "foo", searchResultLimit).Return(posts, nil)
	// Message search is scoped to the caller.
	f.messages.EXPECT().SearchVisible(gomock.Any(), userID, "foo", searchResultLimit).Return(messages, nil)

	recorded := make(chan struct{})
	f.history.EXPECT().UpsertTouch(gomock.Any(), userID, "foo").DoAndReturn(
		func(context.Context, uuid.UUID, string) error {
			close(recorded)
			return nil
		})

	results, err := f.svc.Search(context.Background(), userID, "  Foo ")
	require.NoError(t, err)
	assert.Equal(t, profiles, results.Users)
	assert.Equal(t, posts, results.Posts)
	assert.Equal(t, messages, results.Messages)

	select {
	case <-recorded:
	case <-time.After(2 * time.Second):
		t.Fatal("history write never happened")
	}
}

func TestSearch_HistoryFailureDoesNotAffectResults(t *testing.T) {
	f := newSearchFixture(t)
	userID := uuid.New()

	f.users.EXPECT().SearchProfiles(gomock.Any(), "foo", searchResultLimit).Return([]entity.Profile{}, nil)
	f.posts.EXPECT().SearchWithAuthor(gomock.Any(), "foo", searchResultLimit).Return([]*entity.Post{}, nil)
	f.messages.EXPECT().SearchVisible(gomock.Any(), userID, "foo", searchResultLimit).Return([]*entity.Message{}, nil)

	recorded := make(chan struct{})
	f.history.EXPECT().UpsertTouch(gomock.Any(), userID, "foo").DoAndReturn(
		func(context.Context, uuid.UUID, string) error {
			close(recorded)
			return apperr.Internal("history table locked")
		})

	_, err := f.svc.Search(context.Background(), userID, "foo")
	require.NoError(t, err)

	select {
	case <-recorded:
	case <-time.After(2 * time.Second):
		t.Fatal("history write never happened")
	}
}

func TestSearch_LookupFailure(t *testing.T) {
	f := newSearchFixture(t)
	userID := uuid.New()

	f.users.EXPECT().SearchProfiles(gomock.Any(), "foo", searchResultLimit).Return([]entity.Profile{}, nil).MaxTimes(1)
	f.posts.EXPECT().SearchWithAuthor(gomock.Any(), "foo", searchResultLimit).Return(nil, apperr.Internal("db down"))
	f.messages.EXPECT().SearchVisible(gomock.Any(), userID, "foo", searchResultLimit).Return([]*entity.Message{}, nil).MaxTimes(1)

	_, err := f.svc.Search(context.Background(), userID, "foo")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
}

func TestHistory(t *testing.T) {
	f := newSearchFixture(t)
	userID := uuid.New()

	entries := []*entity.SearchHistory{{ID: 1, UserID: userID, Query: "foo"}}
	f.history.EXPECT().ListRecent(gomock.Any(), userID, historyListLimit).Return(entries, nil)

	got, err := f.svc.History(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestClearHistory(t *testing.T) {
	f := newSearchFixture(t)
	userID := uuid.New()

	f.history.EXPECT().DeleteAll(gomock.Any(), userID).Return(nil)
	require.NoError(t, f.svc.ClearHistory(context.Background(), userID))
}

func TestDeleteHistoryItem(t *testing.T) {
	f := newSearchFixture(t)
	userID := uuid.New()

	f.history.EXPECT().DeleteOne(gomock.Any(), userID, uint(7)).Return(nil)
	require.NoError(t, f.svc.DeleteHistoryItem(context.Background(), userID, 7))
}

func TestDeleteHistoryItem_NotFound(t *testing.T) {
	f := newSearchFixture(t)
	userID := uuid.New()

	// Deleting someone else's entry, or a missing one, reports not found.
	f.history.EXPECT().DeleteOne(gomock.Any(), userID, uint(7)).Return(apperr.ErrHistoryItemNotFound)

	err := f.svc.DeleteHistoryItem(context.Background(), userID, 7)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

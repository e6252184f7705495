package service

import (
	"context"
	"testing"

	"mingle/internal/entity"
	"mingle/internal/repository/mocks"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postFixture struct {
	posts         *mocks.MockPostRepository
	notifications *mocks.MockNotificationRepository
	svc           PostService
}

func newPostFixture(t *testing.T) *postFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &postFixture{
		posts:         mocks.NewMockPostRepository(ctrl),
		notifications: mocks.NewMockNotificationRepository(ctrl),
	}
	f.svc = NewPostService(f.posts, f.notifications, logger.NewNop())
	return f
}

func TestCreatePost(t *testing.T) {
	f := newPostFixture(t)
	userID := uuid.New()
	created := &entity.Post{ID: uuid.New(), UserID: userID, Content: "hello world"}

	f.posts.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)

	got, err := f.svc.Create(context.Background(), userID, "hello world", "")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = f.svc.Create(context.Background(), userID, "   ", "")
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestToggleLike_LikesAndNotifies(t *testing.T) {
	f := newPostFixture(t)
	authorID := uuid.New()
	likerID := uuid.New()
	post := &entity.Post{ID: uuid.New(), UserID: authorID}

	f.posts.EXPECT().GetByID(gomock.Any(), post.ID).Return(post, nil)
	f.posts.EXPECT().FindLike(gomock.Any(), likerID, post.ID).Return(nil, nil)
	f.posts.EXPECT().CreateLike(gomock.Any(), gomock.Any()).Return(nil)
	f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *entity.Notification) error {
			assert.Equal(t, authorID, n.UserID)
			assert.Equal(t, likerID, n.ActorID)
			assert.Equal(t, entity.NotificationLike, n.Type)
			return nil
		})

	liked, err := f.svc.ToggleLike(context.Background(), likerID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestToggleLike_UnlikesWithoutNotifying(t *testing.T) {
	f := newPostFixture(t)
	likerID := uuid.New()
	post := &entity.Post{ID: uuid.New(), UserID: uuid.New()}
	existing := &entity.Like{ID: uuid.New(), UserID: likerID, PostID: post.ID}

	f.posts.EXPECT().GetByID(gomock.Any(), post.ID).Return(post, nil)
	f.posts.EXPECT().FindLike(gomock.Any(), likerID, post.ID).Return(existing, nil)
	f.posts.EXPECT().DeleteLike(gomock.Any(), existing.ID).Return(nil)

	liked, err := f.svc.ToggleLike(context.Background(), likerID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleLike_OwnPostDoesNotNotify(t *testing.T) {
	f := newPostFixture(t)
	authorID := uuid.New()
	post := &entity.Post{ID: uuid.New(), UserID: authorID}

	f.posts.EXPECT().GetByID(gomock.Any(), post.ID).Return(post, nil)
	f.posts.EXPECT().FindLike(gomock.Any(), authorID, post.ID).Return(nil, nil)
	f.posts.EXPECT().CreateLike(gomock.Any(), gomock.Any()).Return(nil)

	liked, err := f.svc.ToggleLike(context.Background(), authorID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestAddComment(t *testing.T) {
	f := newPostFixture(t)
	authorID := uuid.New()
	commenterID := uuid.New()
	post := &entity.Post{ID: uuid.New(), UserID: authorID}
	created := &entity.Comment{ID: uuid.New(), UserID: commenterID, PostID: post.ID, Content: "nice"}

	f.posts.EXPECT().GetByID(gomock.Any(), post.ID).Return(post, nil)
	f.posts.EXPECT().CreateComment(gomock.Any(), gomock.Any()).Return(created, nil)
	f.notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	got, err := f.svc.AddComment(context.Background(), commenterID, post.ID, "nice")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestAddComment_MissingPost(t *testing.T) {
	f := newPostFixture(t)
	postID := uuid.New()

	f.posts.EXPECT().GetByID(gomock.Any(), postID).Return(nil, apperr.ErrPostNotFound)

	_, err := f.svc.AddComment(context.Background(), uuid.New(), postID, "nice")
	assert.ErrorIs(t, err, apperr.ErrPostNotFound)
}

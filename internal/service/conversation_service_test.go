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

func newTestUser(name string) *entity.User {
	return &entity.User{ID: uuid.New(), DisplayName: name}
}

func msgBetween(sender, receiver *entity.User, content string, read bool, at time.Time) *entity.Message {
	return &entity.Message{
		ID:         uuid.New(),
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Content:    content,
		IsRead:     read,
		CreatedAt:  at,
		Sender:     sender,
		Receiver:   receiver,
	}
}

func TestSummarizeConversations_OneEntryPerCounterparty(t *testing.T) {
	me := newTestUser("me")
	alice := newTestUser("alice")
	bob := newTestUser("bob")
	now := time.Now()

	// Newest first, the way the repository returns them.
	messages := []*entity.Message{
		msgBetween(alice, me, "latest from alice", false, now),
		msgBetween(me, bob, "ping bob", true, now.Add(-1*time.Minute)),
		msgBetween(alice, me, "older from alice", false, now.Add(-2*time.Minute)),
		msgBetween(bob, me, "from bob", false, now.Add(-3*time.Minute)),
	}

	summaries := summarizeConversations(me.ID, messages)

	require.Len(t, summaries, 2)

	assert.Equal(t, alice.ID, summaries[0].User.ID)
	assert.Equal(t, "latest from alice", summaries[0].LastMessage.Content)
	assert.Equal(t, alice.ID, summaries[0].LastMessage.SenderID)
	assert.Equal(t, 2, summaries[0].UnreadCount)

	assert.Equal(t, bob.ID, summaries[1].User.ID)
	assert.Equal(t, "ping bob", summaries[1].LastMessage.Content)
	assert.Equal(t, 1, summaries[1].UnreadCount)
}

func TestSummarizeConversations_LastMessageCanBeOwnUnread(t *testing.T) {
	me := newTestUser("me")
	other := newTestUser("other")
	now := time.Now()

	// My own unread message is the newest: it seeds LastMessage but must not
	// count towards my unread total.
	messages := []*entity.Message{
		msgBetween(me, other, "hi", false, now),
		msgBetween(other, me, "hey", true, now.Add(-1*time.Minute)),
	}

	summaries := summarizeConversations(me.ID, messages)

	require.Len(t, summaries, 1)
	assert.Equal(t, other.ID, summaries[0].User.ID)
	assert.Equal(t, "hi", summaries[0].LastMessage.Content)
	assert.Equal(t, me.ID, summaries[0].LastMessage.SenderID)
	assert.False(t, summaries[0].LastMessage.IsRead)
	assert.Equal(t, 0, summaries[0].UnreadCount)
}

func TestSummarizeConversations_SkipsMissingCounterparty(t *testing.T) {
	me := newTestUser("me")
	other := newTestUser("other")
	now := time.Now()

	orphan := msgBetween(other, me, "orphan", false, now)
	orphan.Sender = nil

	messages := []*entity.Message{
		orphan,
		msgBetween(other, me, "still here", false, now.Add(-1*time.Minute)),
	}

	summaries := summarizeConversations(me.ID, messages)

	require.Len(t, summaries, 1)
	assert.Equal(t, "still here", summaries[0].LastMessage.Content)
	assert.Equal(t, 1, summaries[0].UnreadCount)
}

func TestSummarizeConversations_Empty(t *testing.T) {
	summaries := summarizeConversations(uuid.New(), nil)
	assert.Empty(t, summaries)
}

func TestConversations_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockMessageRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)
	svc := NewConversationService(messages, notifications, logger.NewNop())

	userID := uuid.New()
	messages.EXPECT().FindByParticipant(gomock.Any(), userID).Return(nil, apperr.Internal("db down"))

	_, err := svc.Conversations(context.Background(), userID)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInternal, apperr.CodeOf(err))
}

func TestMarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockMessageRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)
	svc := NewConversationService(messages, notifications, logger.NewNop())

	userID := uuid.New()
	counterpartyID := uuid.New()

	// Sender/receiver order matters: only messages TO the user flip.
	messages.EXPECT().BulkMarkRead(gomock.Any(), counterpartyID, userID).Return(int64(3), nil)
	require.NoError(t, svc.MarkRead(context.Background(), userID, counterpartyID))

	// Calling again with nothing left to update is not an error.
	messages.EXPECT().BulkMarkRead(gomock.Any(), counterpartyID, userID).Return(int64(0), nil)
	require.NoError(t, svc.MarkRead(context.Background(), userID, counterpartyID))
}

func TestSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockMessageRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)
	svc := NewConversationService(messages, notifications, logger.NewNop())

	senderID := uuid.New()
	receiverID := uuid.New()
	created := &entity.Message{ID: uuid.New(), SenderID: senderID, ReceiverID: receiverID, Content: "hello"}

	messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)
	notifications.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, n *entity.Notification) error {
			assert.Equal(t, receiverID, n.UserID)
			assert.Equal(t, senderID, n.ActorID)
			assert.Equal(t, entity.NotificationMessage, n.Type)
			assert.Equal(t, created.ID, n.ReferenceID)
			return nil
		})

	got, err := svc.Send(context.Background(), senderID, receiverID, "hello")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestSend_NotificationFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockMessageRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)
	svc := NewConversationService(messages, notifications, logger.NewNop())

	senderID := uuid.New()
	receiverID := uuid.New()
	created := &entity.Message{ID: uuid.New(), SenderID: senderID, ReceiverID: receiverID, Content: "hello"}

	messages.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)
	notifications.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperr.Internal("notify failed"))

	got, err := svc.Send(context.Background(), senderID, receiverID, "hello")
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestSend_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockMessageRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)
	svc := NewConversationService(messages, notifications, logger.NewNop())

	userID := uuid.New()

	_, err := svc.Send(context.Background(), userID, uuid.New(), "")
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))

	_, err = svc.Send(context.Background(), userID, userID, "hi me")
	assert.Equal(t, apperr.CodeInvalidArgument, apperr.CodeOf(err))
}

func TestThread(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	messages := mocks.NewMockMessageRepository(ctrl)
	notifications := mocks.NewMockNotificationRepository(ctrl)
	svc := NewConversationService(messages, notifications, logger.NewNop())

	userID := uuid.New()
	otherID := uuid.New()
	thread := []*entity.Message{{ID: uuid.New(), Content: "a"}, {ID: uuid.New(), Content: "b"}}

	messages.EXPECT().FindThread(gomock.Any(), userID, otherID).Return(thread, nil)

	got, err := svc.Thread(context.Background(), userID, otherID)
	require.NoError(t, err)
	assert.Equal(t, thread, got)
}

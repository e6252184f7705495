package service

import (
	"context"
	"time"

	"mingle/internal/entity"
	"mingle/internal/repository"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/google/uuid"
)

// ConversationSummary is one row of the conversation list: the counterparty,
// the newest message exchanged with them and how many of their messages the
// current user has not read yet.
type ConversationSummary struct {
	User        entity.Profile `json:"user"`
	LastMessage LastMessage    `json:"lastMessage"`
	UnreadCount int            `json:"unreadCount"`
}

type LastMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	SenderID  uuid.UUID `json:"senderId"`
	IsRead    bool      `json:"isRead"`
}

type ConversationService interface {
	// Conversations returns one summary per counterparty, most recent
	// conversation first.
	Conversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error)
	// MarkRead flips every unread message from the counterparty to the user
	// in one bulk update. Idempotent.
	MarkRead(ctx context.Context, userID, counterpartyID uuid.UUID) error
	Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*entity.Message, error)
	Thread(ctx context.Context, userID, otherID uuid.UUID) ([]*entity.Message, error)
}

type conversationService struct {
	messages      repository.MessageRepository
	notifications repository.NotificationRepository
	logger        *logger.Logger
}

func NewConversationService(messages repository.MessageRepository, notifications repository.NotificationRepository, logger *logger.Logger) ConversationService {
	return &conversationService{
		messages:      messages,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *conversationService) Conversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error) {
	messages, err := s.messages.FindByParticipant(ctx, userID)
	if err != nil {
		s.logger.Error("loading conversation messages failed", "user", userID, "err", err)
		return nil, apperr.Internal("could not load conversations")
	}
	return summarizeConversations(userID, messages), nil
}

// summarizeConversations folds a newest-first message sequence into one
// summary per counterparty. The first message seen for a counterparty is the
// newest one and seeds LastMessage; the unread counter keeps accumulating
// over the whole sequence. Output keeps first-seen order, which an unordered
// map alone would not give.
func summarizeConversations(currentUserID uuid.UUID, messages []*entity.Message) []*ConversationSummary {
	byCounterparty := make(map[uuid.UUID]*ConversationSummary, len(messages))
	order := make([]uuid.UUID, 0, len(messages))

	for _, msg := range messages {
		counterparty := msg.Receiver
		if msg.SenderID != currentUserID {
			counterparty = msg.Sender
		}
		if counterparty == nil {
			// counterparty row is gone; skip rather than fail the whole list
			continue
		}

		summary, seen := byCounterparty[counterparty.ID]
		if !seen {
			summary = &ConversationSummary{
				User: counterparty.Profile(),
				LastMessage: LastMessage{
					Content:   msg.Content,
					CreatedAt: msg.CreatedAt,
					SenderID:  msg.SenderID,
					IsRead:    msg.IsRead,
				},
			}
			byCounterparty[counterparty.ID] = summary
			order = append(order, counterparty.ID)
		}

		if msg.ReceiverID == currentUserID && !msg.IsRead {
			summary.UnreadCount++
		}
	}

	summaries := make([]*ConversationSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, byCounterparty[id])
	}
	return summaries
}

func (s *conversationService) MarkRead(ctx context.Context, userID, counterpartyID uuid.UUID) error {
	updated, err := s.messages.BulkMarkRead(ctx, counterpartyID, userID)
	if err != nil {
		s.logger.Error("marking messages read failed", "user", userID, "counterparty", counterpartyID, "err", err)
		return apperr.Internal("could not mark messages as read")
	}
	s.logger.Debug("marked messages read", "user", userID, "counterparty", counterpartyID, "updated", updated)
	return nil
}

func (s *conversationService) Send(ctx context.Context, senderID, receiverID uuid.UUID, content string) (*entity.Message, error) {
	if content == "" {
		return nil, apperr.InvalidArg("message content is required")
	}
	if senderID == receiverID {
		return nil, apperr.InvalidArg("cannot message yourself")
	}

	message, err := s.messages.Create(ctx, &entity.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		s.logger.Error("sending message failed", "sender", senderID, "receiver", receiverID, "err", err)
		return nil, apperr.Internal("could not send message")
	}

	// Inbox badge only. The message itself is already committed.
	if err := s.notifications.Create(ctx, &entity.Notification{
		UserID:      receiverID,
		ActorID:     senderID,
		Type:        entity.NotificationMessage,
		ReferenceID: message.ID,
		CreatedAt:   time.Now(),
	}); err != nil {
		s.logger.Warn("message notification not recorded", "message", message.ID, "err", err)
	}

	return message, nil
}

func (s *conversationService) Thread(ctx context.Context, userID, otherID uuid.UUID) ([]*entity.Message, error) {
	messages, err := s.messages.FindThread(ctx, userID, otherID)
	if err != nil {
		s.logger.Error("loading thread failed", "user", userID, "other", otherID, "err", err)
		return nil, apperr.Internal("could not load conversation")
	}
	return messages, nil
}

package service

import (
	"context"
	"strings"

	"mingle/internal/entity"
	"mingle/internal/repository"
	apperr "mingle/pkg/errors"
	"mingle/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	searchResultLimit = 5
	historyListLimit  = 10
)

type SearchResults struct {
	Users    []entity.Profile  `json:"users"`
	Posts    []*entity.Post    `json:"posts"`
	Messages []*entity.Message `json:"messages"`
}

type SearchService interface {
	// Search fans out over users, posts and the caller's own messages and
	// records the normalized query in the caller's history.
	Search(ctx context.Context, userID uuid.UUID, query string) (*SearchResults, error)
	History(ctx context.Context, userID uuid.UUID) ([]*entity.SearchHistory, error)
	ClearHistory(ctx context.Context, userID uuid.UUID) error
	DeleteHistoryItem(ctx context.Context, userID uuid.UUID, id uint) error
}

type searchService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	messages repository.MessageRepository
	history  repository.SearchHistoryRepository
	logger   *logger.Logger
}

func NewSearchService(users repository.UserRepository, posts repository.PostRepository, messages repository.MessageRepository, history repository.SearchHistoryRepository, logger *logger.Logger) SearchService {
	return &searchService{
		users:    users,
		posts:    posts,
		messages: messages,
		history:  history,
		logger:   logger,
	}
}

// NormalizeQuery is the de-duplication key for history: "Foo" and "foo"
// collapse to one entry.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func (s *searchService) Search(ctx context.Context, userID uuid.UUID, query string) (*SearchResults, error) {
	results := &SearchResults{
		Users:    []entity.Profile{},
		Posts:    []*entity.Post{},
		Messages: []*entity.Message{},
	}

	normalized := NormalizeQuery(query)
	if normalized == "" {
		return results, nil
	}

	// The three lookups are independent; respond only once all complete.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.users.SearchProfiles(gctx, normalized, searchResultLimit)
		if err != nil {
			return err
		}
		results.Users = users
		return nil
	})
	g.Go(func() error {
		posts, err := s.posts.SearchWithAuthor(gctx, normalized, searchResultLimit)
		if err != nil {
			return err
		}
		results.Posts = posts
		return nil
	})
	g.Go(func() error {
		// Restricted to the caller's own conversations inside the query.
		messages, err := s.messages.SearchVisible(gctx, userID, normalized, searchResultLimit)
		if err != nil {
			return err
		}
		results.Messages = messages
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("search failed", "user", userID, "query", normalized, "err", err)
		return nil, apperr.Internal("search failed")
	}

	// The response never waits on, or fails because of, the history write.
	go s.recordHistory(context.WithoutCancel(ctx), userID, normalized)

	return results, nil
}

func (s *searchService) recordHistory(ctx context.Context, userID uuid.UUID, normalized string) {
	if err := s.history.UpsertTouch(ctx, userID, normalized); err != nil {
		s.logger.Warn("search history not recorded", "user", userID, "query", normalized, "err", err)
	}
}

func (s *searchService) History(ctx context.Context, userID uuid.UUID) ([]*entity.SearchHistory, error) {
	entries, err := s.history.ListRecent(ctx, userID, historyListLimit)
	if err != nil {
		s.logger.Error("loading search history failed", "user", userID, "err", err)
		return nil, apperr.Internal("could not load search history")
	}
	return entries, nil
}

func (s *searchService) ClearHistory(ctx context.Context, userID uuid.UUID) error {
	if err := s.history.DeleteAll(ctx, userID); err != nil {
		s.logger.Error("clearing search history failed", "user", userID, "err", err)
		return apperr.Internal("could not clear search history")
	}
	return nil
}

func (s *searchService) DeleteHistoryItem(ctx context.Context, userID uuid.UUID, id uint) error {
	err := s.history.DeleteOne(ctx, userID, id)
	if err != nil {
		if apperr.CodeOf(err) == apperr.CodeNotFound {
			return err
		}
		s.logger.Error("deleting search history item failed", "user", userID, "id", id, "err", err)
		return apperr.Internal("could not delete search history item")
	}
	return nil
}

package notification

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// unreadCountTTL bounds staleness if an invalidation is ever missed.
const unreadCountTTL = 5 * time.Minute

// Service implements notification operations. Unread counters are cached in
// Redis since dashboards poll them; the cache is invalidated on every write.
type Service struct {
	repo   Repository
	cache  redis.UniversalClient
	logger *zap.Logger
}

// NewService creates a new notification service. The cache client may be nil,
// in which case counts always hit the database.
func NewService(repo Repository, cache redis.UniversalClient, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Append persists a new notification and invalidates the recipient's unread
// counter. Used by the dispatcher; notifications are never created from UI
// actions.
func (s *Service) Append(ctx context.Context, n *Notification) error {
	if !n.Recipient.Valid() {
		return ErrInvalidRecipient
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.invalidate(ctx, recipientOf(n))
	return nil
}

// List returns notifications for a recipient, newest first.
func (s *Service) List(ctx context.Context, recipient Recipient, unreadOnly bool, limit, offset int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(ctx, recipient, unreadOnly, limit, offset)
}

// UnreadCount returns the number of unread notifications for a recipient.
func (s *Service) UnreadCount(ctx context.Context, recipient Recipient) (int64, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, recipient.CacheKey()).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
	}

	count, err := s.repo.CountUnread(ctx, recipient)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, recipient.CacheKey(), count, unreadCountTTL).Err(); err != nil {
			s.logger.Warn("unread count cache set failed", zap.Error(err))
		}
	}

	return count, nil
}

// MarkRead marks a single notification as read.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID, recipient Recipient) error {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, recipient)
	return nil
}

// MarkAllRead marks all of a recipient's notifications as read.
func (s *Service) MarkAllRead(ctx context.Context, recipient Recipient) error {
	if err := s.repo.MarkAllRead(ctx, recipient); err != nil {
		return err
	}
	s.invalidate(ctx, recipient)
	return nil
}

func (s *Service) invalidate(ctx context.Context, recipient Recipient) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, recipient.CacheKey()).Err(); err != nil {
		s.logger.Warn("unread count cache invalidation failed",
			zap.String("key", recipient.CacheKey()),
			zap.Error(err),
		)
	}
}

func recipientOf(n *Notification) Recipient {
	r := Recipient{Class: n.Recipient}
	if n.Recipient == RecipientCustomer && n.CustomerID != nil {
		r.CustomerID = *n.CustomerID
	}
	return r
}

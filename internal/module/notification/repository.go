package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipient addresses a notification query: a class plus the customer ID
// when the class is customer.
type Recipient struct {
	Class      RecipientClass
	CustomerID uuid.UUID
}

// CacheKey returns the cache key for this recipient's unread counter.
func (r Recipient) CacheKey() string {
	if r.Class == RecipientCustomer {
		return "notif:unread:customer:" + r.CustomerID.String()
	}
	return "notif:unread:" + string(r.Class)
}

// Repository defines the interface for notification data access.
// There is deliberately no delete operation.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	List(ctx context.Context, recipient Recipient, unreadOnly bool, limit, offset int) ([]*Notification, error)
	CountUnread(ctx context.Context, recipient Recipient) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, recipient Recipient) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) recipientQuery(ctx context.Context, recipient Recipient) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&Notification{}).
		Where("recipient = ?", recipient.Class)
	if recipient.Class == RecipientCustomer {
		query = query.Where("customer_id = ?", recipient.CustomerID)
	}
	return query
}

func (r *repository) List(ctx context.Context, recipient Recipient, unreadOnly bool, limit, offset int) ([]*Notification, error) {
	query := r.recipientQuery(ctx, recipient)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []*Notification
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	return notifications, err
}

func (r *repository) CountUnread(ctx context.Context, recipient Recipient) (int64, error) {
	var count int64
	err := r.recipientQuery(ctx, recipient).Where("read = ?", false).Count(&count).Error
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&Notification{}).
		Where("id = ?", id).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(ctx context.Context, recipient Recipient) error {
	err := r.recipientQuery(ctx, recipient).
		Where("read = ?", false).
		Update("read", true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

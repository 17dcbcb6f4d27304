package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/prefabworks/server/internal/shared/events"
)

// memoryRepository is an in-memory Repository for dispatcher tests.
type memoryRepository struct {
	created []*Notification
}

func (r *memoryRepository) Create(_ context.Context, n *Notification) error {
	r.created = append(r.created, n)
	return nil
}

func (r *memoryRepository) List(_ context.Context, recipient Recipient, unreadOnly bool, limit, offset int) ([]*Notification, error) {
	var result []*Notification
	for _, n := range r.created {
		if n.Recipient != recipient.Class {
			continue
		}
		if recipient.Class == RecipientCustomer &&
			(n.CustomerID == nil || *n.CustomerID != recipient.CustomerID) {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		result = append(result, n)
	}
	return result, nil
}

func (r *memoryRepository) CountUnread(ctx context.Context, recipient Recipient) (int64, error) {
	unread, err := r.List(ctx, recipient, true, len(r.created), 0)
	return int64(len(unread)), err
}

func (r *memoryRepository) MarkRead(_ context.Context, id uuid.UUID) error {
	for _, n := range r.created {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (r *memoryRepository) MarkAllRead(ctx context.Context, recipient Recipient) error {
	unread, _ := r.List(ctx, recipient, true, len(r.created), 0)
	for _, n := range unread {
		n.Read = true
	}
	return nil
}

func (r *memoryRepository) byRecipient(class RecipientClass) []*Notification {
	var result []*Notification
	for _, n := range r.created {
		if n.Recipient == class {
			result = append(result, n)
		}
	}
	return result
}

func newTestDispatcher() (*Dispatcher, *memoryRepository) {
	repo := &memoryRepository{}
	svc := NewService(repo, nil, zap.NewNop())
	return NewDispatcher(svc, nil, zap.NewNop()), repo
}

func statusEvent(from, to string) *events.OrderStatusChangedEvent {
	return events.NewOrderStatusChangedEvent(
		uuid.New(), uuid.New(), "ORD-20260115-ABC12", from, to, "admin",
	)
}

func TestDispatcherStatusChanged(t *testing.T) {
	t.Run("plain transition notifies the customer", func(t *testing.T) {
		d, repo := newTestDispatcher()
		event := statusEvent("processing", "in_production")

		require.NoError(t, d.Handle(event))

		require.Len(t, repo.created, 1)
		n := repo.created[0]
		assert.Equal(t, RecipientCustomer, n.Recipient)
		assert.Equal(t, KindOrderStatusChanged, n.Kind)
		require.NotNil(t, n.CustomerID)
		assert.Equal(t, event.CustomerID, *n.CustomerID)
		require.NotNil(t, n.OrderID)
		assert.Equal(t, event.OrderID, *n.OrderID)
		assert.Contains(t, n.Message, "ORD-20260115-ABC12")
		assert.Contains(t, n.Message, "In Production")
	})

	t.Run("processing fans out to admins and customer", func(t *testing.T) {
		d, repo := newTestDispatcher()

		require.NoError(t, d.Handle(statusEvent("pending", "processing")))

		assert.Len(t, repo.created, 3)

		admin := repo.byRecipient(RecipientAdminGroup)
		require.Len(t, admin, 1)
		assert.Equal(t, KindNewOrder, admin[0].Kind)

		customer := repo.byRecipient(RecipientCustomer)
		require.Len(t, customer, 2)
		kinds := []Kind{customer[0].Kind, customer[1].Kind}
		assert.Contains(t, kinds, KindOrderStatusChanged)
		assert.Contains(t, kinds, KindContractReady)
	})

	t.Run("shipping alerts personnel for delivery", func(t *testing.T) {
		d, repo := newTestDispatcher()

		require.NoError(t, d.Handle(statusEvent("in_production", "shipped")))

		personnel := repo.byRecipient(RecipientPersonnel)
		require.Len(t, personnel, 1)
		assert.Equal(t, KindDeliveryScheduled, personnel[0].Kind)
	})

	t.Run("cancellation notifies customer and admins", func(t *testing.T) {
		d, repo := newTestDispatcher()

		require.NoError(t, d.Handle(statusEvent("pending", "cancelled")))

		assert.Len(t, repo.created, 2)
		for _, n := range repo.created {
			assert.Equal(t, KindOrderCancelled, n.Kind)
		}
		assert.Len(t, repo.byRecipient(RecipientCustomer), 1)
		assert.Len(t, repo.byRecipient(RecipientAdminGroup), 1)
	})
}

func TestDispatcherPaymentConfirmed(t *testing.T) {
	t.Run("stage payment notifies customer and admins", func(t *testing.T) {
		d, repo := newTestDispatcher()
		event := events.NewPaymentConfirmedEvent(
			uuid.New(), uuid.New(), "ORD-20260115-ABC12",
			"installment", "initial",
			decimal.NewFromInt(50000), decimal.NewFromInt(50000),
			"fifty_percent_paid",
		)

		require.NoError(t, d.Handle(event))

		require.Len(t, repo.created, 2)
		for _, n := range repo.created {
			assert.Equal(t, KindPaymentConfirmed, n.Kind)
			assert.Contains(t, n.Message, "Initial")
			assert.Contains(t, n.Message, "50000.00")
		}
		assert.Len(t, repo.byRecipient(RecipientCustomer), 1)
		assert.Len(t, repo.byRecipient(RecipientAdminGroup), 1)
	})

	t.Run("full payment message omits stage", func(t *testing.T) {
		d, repo := newTestDispatcher()
		event := events.NewPaymentConfirmedEvent(
			uuid.New(), uuid.New(), "ORD-20260115-ABC12",
			"full", "",
			decimal.NewFromInt(100000), decimal.Zero,
			"fully_paid",
		)

		require.NoError(t, d.Handle(event))

		require.Len(t, repo.created, 2)
		assert.Contains(t, repo.created[0].Message, "Full payment")
	})
}

func TestDispatcherHandles(t *testing.T) {
	d, _ := newTestDispatcher()
	assert.ElementsMatch(t,
		[]string{events.OrderStatusChangedType, events.PaymentConfirmedType},
		d.Handles(),
	)
}

func TestServiceReadTracking(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepository{}
	svc := NewService(repo, nil, zap.NewNop())
	recipient := Recipient{Class: RecipientCustomer, CustomerID: uuid.New()}

	appendFor := func(r Recipient) *Notification {
		n := &Notification{ID: uuid.New(), Recipient: r.Class, Kind: KindNewOrder, Message: "m"}
		if r.Class == RecipientCustomer {
			id := r.CustomerID
			n.CustomerID = &id
		}
		require.NoError(t, svc.Append(ctx, n))
		return n
	}

	first := appendFor(recipient)
	appendFor(recipient)
	appendFor(Recipient{Class: RecipientAdminGroup})

	count, err := svc.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, svc.MarkRead(ctx, first.ID, recipient))
	count, err = svc.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, svc.MarkAllRead(ctx, recipient))
	count, err = svc.UnreadCount(ctx, recipient)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	err = svc.MarkRead(ctx, uuid.New(), recipient)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	t.Run("invalid recipient class rejected", func(t *testing.T) {
		err := svc.Append(ctx, &Notification{ID: uuid.New(), Recipient: RecipientClass("nobody")})
		assert.ErrorIs(t, err, ErrInvalidRecipient)
	})
}

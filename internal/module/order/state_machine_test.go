package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(status OrderStatus, payment PaymentStatus) *Order {
	return &Order{
		ID:          uuid.New(),
		OrderNo:     "ORD-20260115-TEST1",
		CustomerID:  uuid.New(),
		Status:      status,
		TotalAmount: decimal.NewFromInt(100000),
		Payment: PaymentInfo{
			Method: PaymentMethodInstallment,
			Mode:   PaymentModeBank,
			Timing: PaymentTimingLater,
			Status: payment,
		},
	}
}

func TestStateMachineTransition(t *testing.T) {
	sm := NewStateMachine()

	t.Run("walks the full pipeline", func(t *testing.T) {
		o := newTestOrder(OrderStatusPending, PaymentStatusFullyPaid)

		for _, to := range []OrderStatus{
			OrderStatusProcessing,
			OrderStatusInProduction,
			OrderStatusShipped,
			OrderStatusCompleted,
		} {
			event, err := sm.Transition(o, to, "admin")
			require.NoError(t, err, "transition to %s", to)
			assert.Equal(t, to, o.Status)
			assert.Equal(t, string(to), event.To)
		}
	})

	t.Run("emits event describing the transition", func(t *testing.T) {
		o := newTestOrder(OrderStatusPending, PaymentStatusPending)

		event, err := sm.Transition(o, OrderStatusProcessing, "personnel")
		require.NoError(t, err)

		assert.Equal(t, o.ID, event.OrderID)
		assert.Equal(t, o.OrderNo, event.OrderNo)
		assert.Equal(t, o.CustomerID, event.CustomerID)
		assert.Equal(t, string(OrderStatusPending), event.From)
		assert.Equal(t, string(OrderStatusProcessing), event.To)
		assert.Equal(t, "personnel", event.ActorRole)
	})

	t.Run("rejects skipping a stage", func(t *testing.T) {
		o := newTestOrder(OrderStatusPending, PaymentStatusPending)

		event, err := sm.Transition(o, OrderStatusShipped, "admin")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Nil(t, event)
		assert.Equal(t, OrderStatusPending, o.Status)
	})

	t.Run("rejects going backwards", func(t *testing.T) {
		o := newTestOrder(OrderStatusShipped, PaymentStatusFullyPaid)

		_, err := sm.Transition(o, OrderStatusInProduction, "admin")
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, OrderStatusShipped, o.Status)
	})

	t.Run("rejects no-op transition", func(t *testing.T) {
		o := newTestOrder(OrderStatusProcessing, PaymentStatusPending)

		_, err := sm.Transition(o, OrderStatusProcessing, "admin")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal states reject everything", func(t *testing.T) {
		for _, terminal := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
			o := newTestOrder(terminal, PaymentStatusFullyPaid)
			for _, to := range []OrderStatus{
				OrderStatusPending, OrderStatusProcessing, OrderStatusInProduction,
				OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled,
			} {
				_, err := sm.Transition(o, to, "admin")
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", terminal, to)
				assert.Equal(t, terminal, o.Status)
			}
		}
	})

	t.Run("rejects unknown target status", func(t *testing.T) {
		o := newTestOrder(OrderStatusPending, PaymentStatusPending)

		_, err := sm.Transition(o, OrderStatus("delivered"), "admin")
		assert.ErrorIs(t, err, ErrUnknownStatus)
		assert.Equal(t, OrderStatusPending, o.Status)
	})
}

func TestCompletionPaymentGate(t *testing.T) {
	sm := NewStateMachine()

	t.Run("completion blocked until fully paid", func(t *testing.T) {
		for _, payment := range []PaymentStatus{
			PaymentStatusPending, PaymentStatusFiftyPaid, PaymentStatusNinetyPaid,
		} {
			o := newTestOrder(OrderStatusShipped, payment)

			event, err := sm.Transition(o, OrderStatusCompleted, "admin")
			assert.ErrorIs(t, err, ErrPaymentIncomplete, "payment %s", payment)
			assert.Nil(t, event)
			assert.Equal(t, OrderStatusShipped, o.Status)
		}
	})

	t.Run("completion allowed once fully paid", func(t *testing.T) {
		o := newTestOrder(OrderStatusShipped, PaymentStatusFullyPaid)

		event, err := sm.Transition(o, OrderStatusCompleted, "admin")
		require.NoError(t, err)
		assert.Equal(t, OrderStatusCompleted, o.Status)
		assert.Equal(t, string(OrderStatusCompleted), event.To)
	})

	t.Run("gate only guards completion", func(t *testing.T) {
		o := newTestOrder(OrderStatusInProduction, PaymentStatusFiftyPaid)

		_, err := sm.Transition(o, OrderStatusShipped, "admin")
		assert.NoError(t, err)
	})
}

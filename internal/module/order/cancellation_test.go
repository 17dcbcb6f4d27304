package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancellationPolicy(t *testing.T) {
	policy := NewCancellationPolicy(NewStateMachine())

	t.Run("pending orders can be cancelled", func(t *testing.T) {
		o := newTestOrder(OrderStatusPending, PaymentStatusPending)
		assert.True(t, policy.CanCancel(o))

		event, err := policy.Cancel(o, "customer")
		require.NoError(t, err)

		assert.Equal(t, OrderStatusCancelled, o.Status)
		assert.Equal(t, string(OrderStatusPending), event.From)
		assert.Equal(t, string(OrderStatusCancelled), event.To)
		assert.Equal(t, "customer", event.ActorRole)
	})

	t.Run("cancellation window closes at processing", func(t *testing.T) {
		for _, status := range []OrderStatus{
			OrderStatusProcessing, OrderStatusInProduction, OrderStatusShipped,
			OrderStatusCompleted, OrderStatusCancelled,
		} {
			o := newTestOrder(status, PaymentStatusPending)
			assert.False(t, policy.CanCancel(o), "status %s", status)

			_, err := policy.Cancel(o, "customer")
			assert.ErrorIs(t, err, ErrNotCancellable, "status %s", status)
			assert.Equal(t, status, o.Status)
		}
	})
}

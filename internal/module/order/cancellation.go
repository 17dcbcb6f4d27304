package order

import (
	"github.com/prefabworks/server/internal/shared/events"
)

// CancellationPolicy decides whether an order may still be cancelled.
// Once processing begins, cancellation is no longer self-service.
type CancellationPolicy struct {
	sm *StateMachine
}

// NewCancellationPolicy creates a new cancellation policy.
func NewCancellationPolicy(sm *StateMachine) *CancellationPolicy {
	return &CancellationPolicy{sm: sm}
}

// CanCancel returns true only while the order is still pending.
func (p *CancellationPolicy) CanCancel(o *Order) bool {
	return o.Status == OrderStatusPending
}

// Cancel moves a pending order to cancelled. Outside the pending window the
// order is left untouched and ErrNotCancellable is returned.
func (p *CancellationPolicy) Cancel(o *Order, actorRole string) (*events.OrderStatusChangedEvent, error) {
	if !p.CanCancel(o) {
		return nil, ErrNotCancellable
	}
	return p.sm.Transition(o, OrderStatusCancelled, actorRole)
}

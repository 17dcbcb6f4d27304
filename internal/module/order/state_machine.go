package order

import (
	"fmt"

	"github.com/prefabworks/server/internal/shared/events"
)

// StateMachine validates and applies order status transitions. It is
// independent of payment state except for the completion gate.
type StateMachine struct{}

// NewStateMachine creates a new order state machine.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Transition attempts to move an order to a new status. On success the
// order is mutated and exactly one transition event is returned; on
// rejection the order is left untouched and the event is nil.
func (sm *StateMachine) Transition(o *Order, to OrderStatus, actorRole string) (*events.OrderStatusChangedEvent, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if o.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: order is %s", ErrInvalidTransition, o.Status)
	}
	if !CanTransition(o.Status, to) {
		return nil, fmt.Errorf("%w: cannot transition from %s to %s", ErrInvalidTransition, o.Status, to)
	}
	if to == OrderStatusCompleted && !o.IsFullyPaid() {
		return nil, fmt.Errorf("%w: payment status is %s", ErrPaymentIncomplete, o.Payment.Status)
	}

	from := o.Status
	o.Status = to

	return events.NewOrderStatusChangedEvent(
		o.ID, o.CustomerID, o.OrderNo,
		string(from), string(to), actorRole,
	), nil
}

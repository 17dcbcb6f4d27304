package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prefabworks/server/internal/module/order"
	"github.com/prefabworks/server/internal/shared/events"
	"github.com/prefabworks/server/internal/shared/metrics"
)

// dispatchTimeout bounds how long a single event may spend writing
// notifications. The bus calls handlers synchronously on the request path.
const dispatchTimeout = 5 * time.Second

// Dispatcher turns order lifecycle events into persisted notifications.
// It is registered on the event bus; a dispatch failure is logged and
// swallowed so it never affects the transition that produced the event.
type Dispatcher struct {
	svc     *Service
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewDispatcher creates a new notification dispatcher.
func NewDispatcher(svc *Service, m *metrics.Metrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		svc:     svc,
		metrics: m,
		logger:  logger,
	}
}

// Handles returns the event types the dispatcher reacts to.
func (d *Dispatcher) Handles() []string {
	return []string{events.OrderStatusChangedType, events.PaymentConfirmedType}
}

// Handle processes a single lifecycle event.
func (d *Dispatcher) Handle(event events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	switch e := event.(type) {
	case *events.OrderStatusChangedEvent:
		d.onStatusChanged(ctx, e)
	case *events.PaymentConfirmedEvent:
		d.onPaymentConfirmed(ctx, e)
	default:
		d.logger.Warn("unexpected event type", zap.String("type", event.EventType()))
	}
	return nil
}

func (d *Dispatcher) onStatusChanged(ctx context.Context, e *events.OrderStatusChangedEvent) {
	to := order.OrderStatus(e.To)

	if to == order.OrderStatusCancelled {
		d.emit(ctx, e.OrderID, RecipientCustomer, &e.CustomerID, KindOrderCancelled,
			fmt.Sprintf("Order %s has been cancelled.", e.OrderNo))
		d.emit(ctx, e.OrderID, RecipientAdminGroup, nil, KindOrderCancelled,
			fmt.Sprintf("Order %s was cancelled (requested by %s).", e.OrderNo, e.ActorRole))
		return
	}

	d.emit(ctx, e.OrderID, RecipientCustomer, &e.CustomerID, KindOrderStatusChanged,
		fmt.Sprintf("Order %s is now %s.", e.OrderNo, to.Label()))

	switch to {
	case order.OrderStatusProcessing:
		d.emit(ctx, e.OrderID, RecipientAdminGroup, nil, KindNewOrder,
			fmt.Sprintf("Order %s entered processing and needs a contract.", e.OrderNo))
		d.emit(ctx, e.OrderID, RecipientCustomer, &e.CustomerID, KindContractReady,
			fmt.Sprintf("The contract for order %s is being prepared.", e.OrderNo))
	case order.OrderStatusShipped:
		d.emit(ctx, e.OrderID, RecipientPersonnel, nil, KindDeliveryScheduled,
			fmt.Sprintf("Order %s has shipped and needs delivery scheduling.", e.OrderNo))
	}
}

func (d *Dispatcher) onPaymentConfirmed(ctx context.Context, e *events.PaymentConfirmedEvent) {
	var detail string
	if e.Stage != "" {
		detail = fmt.Sprintf("%s payment of %s confirmed for order %s; remaining balance %s.",
			order.InstallmentStage(e.Stage).Label(), e.Amount.StringFixed(2), e.OrderNo,
			e.RemainingBalance.StringFixed(2))
	} else {
		detail = fmt.Sprintf("Full payment of %s confirmed for order %s.",
			e.Amount.StringFixed(2), e.OrderNo)
	}

	d.emit(ctx, e.OrderID, RecipientCustomer, &e.CustomerID, KindPaymentConfirmed, detail)
	d.emit(ctx, e.OrderID, RecipientAdminGroup, nil, KindPaymentConfirmed, detail)
}

func (d *Dispatcher) emit(ctx context.Context, orderID uuid.UUID, class RecipientClass, customerID *uuid.UUID, kind Kind, message string) {
	n := &Notification{
		ID:         uuid.New(),
		Recipient:  class,
		CustomerID: customerID,
		OrderID:    &orderID,
		Kind:       kind,
		Message:    message,
	}

	if err := d.svc.Append(ctx, n); err != nil {
		d.logger.Error("notification dispatch failed",
			zap.String("order_id", orderID.String()),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return
	}

	if d.metrics != nil {
		d.metrics.RecordNotification(string(kind), string(class))
	}
}

package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transition event type constants.
const (
	OrderStatusChangedType = "OrderStatusChanged"
	PaymentConfirmedType   = "PaymentConfirmed"
)

// OrderStatusChangedEvent is emitted when an order status transition is
// accepted. This is defined in the events package to avoid cyclic imports.
type OrderStatusChangedEvent struct {
	BaseEvent

	// OrderID is the unique identifier of the order.
	OrderID uuid.UUID `json:"order_id"`

	// OrderNo is the human-readable order reference.
	OrderNo string `json:"order_no"`

	// CustomerID is the customer who owns the order.
	CustomerID uuid.UUID `json:"customer_id"`

	// From is the status the order left.
	From string `json:"from"`

	// To is the status the order entered.
	To string `json:"to"`

	// ActorRole is the role that requested the transition
	// (e.g., "admin", "personnel", "customer").
	ActorRole string `json:"actor_role"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent.
func NewOrderStatusChangedEvent(
	orderID, customerID uuid.UUID,
	orderNo, from, to, actorRole string,
) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent:  NewBaseEvent(OrderStatusChangedType, orderID, "Order"),
		OrderID:    orderID,
		OrderNo:    orderNo,
		CustomerID: customerID,
		From:       from,
		To:         to,
		ActorRole:  actorRole,
	}
}

// PaymentConfirmedEvent is emitted when a payment confirmation (full or
// installment stage) is accepted.
type PaymentConfirmedEvent struct {
	BaseEvent

	// OrderID is the unique identifier of the order.
	OrderID uuid.UUID `json:"order_id"`

	// OrderNo is the human-readable order reference.
	OrderNo string `json:"order_no"`

	// CustomerID is the customer who owns the order.
	CustomerID uuid.UUID `json:"customer_id"`

	// Method is the payment method ("full" or "installment").
	Method string `json:"method"`

	// Stage is the confirmed installment stage; empty for full payments.
	Stage string `json:"stage,omitempty"`

	// Amount is the amount confirmed by this payment.
	Amount decimal.Decimal `json:"amount"`

	// RemainingBalance is the balance still owed after this payment.
	RemainingBalance decimal.Decimal `json:"remaining_balance"`

	// PaymentStatus is the payment status the order advanced to.
	PaymentStatus string `json:"payment_status"`
}

// NewPaymentConfirmedEvent creates a new PaymentConfirmedEvent.
func NewPaymentConfirmedEvent(
	orderID, customerID uuid.UUID,
	orderNo, method, stage string,
	amount, remaining decimal.Decimal,
	paymentStatus string,
) *PaymentConfirmedEvent {
	return &PaymentConfirmedEvent{
		BaseEvent:        NewBaseEvent(PaymentConfirmedType, orderID, "Order"),
		OrderID:          orderID,
		OrderNo:          orderNo,
		CustomerID:       customerID,
		Method:           method,
		Stage:            stage,
		Amount:           amount,
		RemainingBalance: remaining,
		PaymentStatus:    paymentStatus,
	}
}

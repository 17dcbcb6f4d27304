package notification

import (
	"time"

	"github.com/google/uuid"
)

// RecipientClass identifies who a notification is addressed to.
type RecipientClass string

const (
	RecipientAdminGroup RecipientClass = "admin_group"
	RecipientPersonnel  RecipientClass = "personnel"
	RecipientCustomer   RecipientClass = "customer"
)

// Valid returns true if the recipient class is a known value.
func (r RecipientClass) Valid() bool {
	switch r {
	case RecipientAdminGroup, RecipientPersonnel, RecipientCustomer:
		return true
	default:
		return false
	}
}

// Kind categorizes a notification.
type Kind string

const (
	KindOrderStatusChanged Kind = "order_status_changed"
	KindPaymentConfirmed   Kind = "payment_confirmed"
	KindNewOrder           Kind = "new_order"
	KindOrderCancelled     Kind = "order_cancelled"
	KindContractReady      Kind = "contract_ready"
	KindDeliveryScheduled  Kind = "delivery_scheduled"
)

// Notification is a persisted, server-owned record produced as a side effect
// of an accepted state transition. Notifications are never deleted, only
// marked read.
type Notification struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Recipient RecipientClass `json:"recipient" gorm:"not null;index"`

	// CustomerID is set only when Recipient is customer.
	CustomerID *uuid.UUID `json:"customer_id,omitempty" gorm:"type:uuid;index"`

	// OrderID is a weak reference; cancelling an order does not remove its
	// notification history.
	OrderID *uuid.UUID `json:"order_id,omitempty" gorm:"type:uuid;index"`

	Kind      Kind      `json:"kind" gorm:"not null"`
	Message   string    `json:"message" gorm:"not null"`
	Read      bool      `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name.
func (Notification) TableName() string {
	return "notifications"
}

package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment status of an order.
type OrderStatus string

const (
	OrderStatusPending      OrderStatus = "pending"
	OrderStatusProcessing   OrderStatus = "processing"
	OrderStatusInProduction OrderStatus = "in_production"
	OrderStatusShipped      OrderStatus = "shipped"
	OrderStatusCompleted    OrderStatus = "completed"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// Valid returns true if the status is a known value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusInProduction,
		OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// Label returns the human-readable form of the status.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusProcessing:
		return "Processing"
	case OrderStatusInProduction:
		return "In Production"
	case OrderStatusShipped:
		return "Shipped"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// PaymentMethod represents how an order is paid: all at once or in staged
// installments. Fixed at order creation.
type PaymentMethod string

const (
	PaymentMethodFull        PaymentMethod = "full"
	PaymentMethodInstallment PaymentMethod = "installment"
)

// Valid returns true if the method is a known value.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodFull || m == PaymentMethodInstallment
}

// PaymentMode represents the payment channel.
type PaymentMode string

const (
	PaymentModeCash    PaymentMode = "cash"
	PaymentModeBank    PaymentMode = "bank"
	PaymentModeCheque  PaymentMode = "cheque"
	PaymentModeDigital PaymentMode = "digital"
)

// Valid returns true if the mode is a known value.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeBank, PaymentModeCheque, PaymentModeDigital:
		return true
	default:
		return false
	}
}

// PaymentTiming represents when the customer intends to pay.
type PaymentTiming string

const (
	PaymentTimingNow   PaymentTiming = "now"
	PaymentTimingLater PaymentTiming = "later"
)

// Valid returns true if the timing is a known value.
func (t PaymentTiming) Valid() bool {
	return t == PaymentTimingNow || t == PaymentTimingLater
}

// PaymentStatus represents how much of the order total has been confirmed.
// Values only ever advance; a transition to a lower stage is illegal.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusFiftyPaid  PaymentStatus = "fifty_percent_paid"
	PaymentStatusNinetyPaid PaymentStatus = "ninety_percent_paid"
	PaymentStatusFullyPaid  PaymentStatus = "fully_paid"
)

// Valid returns true if the status is a known value.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusFiftyPaid, PaymentStatusNinetyPaid, PaymentStatusFullyPaid:
		return true
	default:
		return false
	}
}

// Percent returns the confirmed percentage of the order total.
func (s PaymentStatus) Percent() int64 {
	switch s {
	case PaymentStatusFiftyPaid:
		return 50
	case PaymentStatusNinetyPaid:
		return 90
	case PaymentStatusFullyPaid:
		return 100
	default:
		return 0
	}
}

// InstallmentStage represents one of the three fixed portions of an
// installment order's total, confirmed strictly in sequence.
type InstallmentStage string

const (
	StageInitial     InstallmentStage = "initial"
	StagePreDelivery InstallmentStage = "pre_delivery"
	StageFinal       InstallmentStage = "final"
)

// Valid returns true if the stage is a known value.
func (s InstallmentStage) Valid() bool {
	return s == StageInitial || s == StagePreDelivery || s == StageFinal
}

// Label returns the human-readable form of the stage.
func (s InstallmentStage) Label() string {
	switch s {
	case StageInitial:
		return "Initial"
	case StagePreDelivery:
		return "Pre-Delivery"
	case StageFinal:
		return "Final"
	default:
		return string(s)
	}
}

// PaymentInfo holds the payment state owned by an order. It has no identity
// of its own and lives embedded in the orders table.
type PaymentInfo struct {
	Method PaymentMethod `json:"method" gorm:"column:payment_method;not null"`
	Mode   PaymentMode   `json:"mode" gorm:"column:payment_mode;not null"`
	Timing PaymentTiming `json:"timing" gorm:"column:payment_timing;not null"`
	Status PaymentStatus `json:"status" gorm:"column:payment_status;not null;default:pending"`

	// NextStage is the installment stage awaiting confirmation next.
	// Only meaningful when Method is installment; empty once fully paid.
	NextStage InstallmentStage `json:"next_stage,omitempty" gorm:"column:installment_stage"`

	// Receipt references per stage, append-only; never cleared.
	InitialReceipts     pq.StringArray `json:"initial_receipts,omitempty" gorm:"type:text[];column:initial_receipts"`
	PreDeliveryReceipts pq.StringArray `json:"pre_delivery_receipts,omitempty" gorm:"type:text[];column:pre_delivery_receipts"`
	FinalReceipts       pq.StringArray `json:"final_receipts,omitempty" gorm:"type:text[];column:final_receipts"`
}

// ReceiptsForStage returns the receipt references uploaded for a stage.
func (p *PaymentInfo) ReceiptsForStage(stage InstallmentStage) []string {
	switch stage {
	case StageInitial:
		return p.InitialReceipts
	case StagePreDelivery:
		return p.PreDeliveryReceipts
	case StageFinal:
		return p.FinalReceipts
	default:
		return nil
	}
}

// appendReceipts appends receipt references for a stage. Existing uploads
// are never overwritten.
func (p *PaymentInfo) appendReceipts(stage InstallmentStage, refs []string) {
	switch stage {
	case StageInitial:
		p.InitialReceipts = append(p.InitialReceipts, refs...)
	case StagePreDelivery:
		p.PreDeliveryReceipts = append(p.PreDeliveryReceipts, refs...)
	case StageFinal:
		p.FinalReceipts = append(p.FinalReceipts, refs...)
	}
}

// Order represents a prefab construction order.
type Order struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderNo     string          `json:"order_no" gorm:"uniqueIndex;not null"`
	CustomerID  uuid.UUID       `json:"customer_id" gorm:"type:uuid;not null;index"`
	Status      OrderStatus     `json:"status" gorm:"not null;default:pending"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(14,2);not null"`
	Payment     PaymentInfo     `json:"payment" gorm:"embedded"`

	// Version backs the optimistic concurrency check on updates.
	Version   int64     `json:"-" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// TableName returns the database table name.
func (Order) TableName() string {
	return "orders"
}

// IsPending returns true if the order has not yet entered the pipeline.
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsFullyPaid returns true if the full order total has been confirmed.
func (o *Order) IsFullyPaid() bool {
	return o.Payment.Status == PaymentStatusFullyPaid
}

// OrderItem represents a product line in an order.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(14,2)"`
}

// TableName returns the database table name.
func (OrderItem) TableName() string {
	return "order_items"
}

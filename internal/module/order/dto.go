package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderItemRequest is one product line in a create request.
type CreateOrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest represents a request to place an order.
type CreateOrderRequest struct {
	CustomerID    uuid.UUID                `json:"customer_id" binding:"required"`
	TotalAmount   decimal.Decimal          `json:"total_amount" binding:"required"`
	PaymentMethod PaymentMethod            `json:"payment_method" binding:"required"`
	PaymentMode   PaymentMode              `json:"payment_mode" binding:"required"`
	PaymentTiming PaymentTiming            `json:"payment_timing" binding:"required"`
	Items         []CreateOrderItemRequest `json:"items" binding:"required"`
}

// UpdateStatusRequest represents a request to move an order to a new status.
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// SubmitStagePaymentRequest carries the receipt references for a stage
// confirmation.
type SubmitStagePaymentRequest struct {
	Receipts []string `json:"receipts" binding:"required"`
}

// OrderFilter represents filters for listing orders.
type OrderFilter struct {
	CustomerID    *uuid.UUID     `form:"customer_id"`
	Status        *OrderStatus   `form:"status"`
	PaymentStatus *PaymentStatus `form:"payment_status"`
}

// Pagination represents pagination parameters.
type Pagination struct {
	Page     int `form:"page" binding:"min=1"`
	PageSize int `form:"page_size" binding:"min=1,max=100"`
}

// NewPagination creates pagination with defaults.
func NewPagination() *Pagination {
	return &Pagination{
		Page:     1,
		PageSize: 20,
	}
}

// Offset returns the offset for database queries.
func (p *Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderItemResponse represents an order line in API responses.
type OrderItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNo       string              `json:"order_no"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	Status        OrderStatus         `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	PaymentMethod PaymentMethod       `json:"payment_method"`
	PaymentMode   PaymentMode         `json:"payment_mode"`
	PaymentTiming PaymentTiming       `json:"payment_timing"`
	PaymentStatus PaymentStatus       `json:"payment_status"`
	NextStage     InstallmentStage    `json:"next_stage,omitempty"`
	Receipts      map[string][]string `json:"receipts,omitempty"`
	Items         []OrderItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PaymentSummaryResponse exposes the ledger view of an order.
type PaymentSummaryResponse struct {
	OrderID          uuid.UUID       `json:"order_id"`
	PaymentMethod    PaymentMethod   `json:"payment_method"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	StageAmounts     *StageAmounts   `json:"stage_amounts,omitempty"`
	NextStage        string          `json:"next_stage,omitempty"`
}

// OrderToResponse maps an order to its API representation.
func OrderToResponse(o *Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	receipts := make(map[string][]string)
	for _, stage := range StageOrder() {
		if refs := o.Payment.ReceiptsForStage(stage); len(refs) > 0 {
			receipts[string(stage)] = refs
		}
	}
	if len(receipts) == 0 {
		receipts = nil
	}

	return OrderResponse{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		CustomerID:    o.CustomerID,
		Status:        o.Status,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: o.Payment.Method,
		PaymentMode:   o.Payment.Mode,
		PaymentTiming: o.Payment.Timing,
		PaymentStatus: o.Payment.Status,
		NextStage:     o.Payment.NextStage,
		Receipts:      receipts,
		Items:         items,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

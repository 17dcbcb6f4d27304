package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prefabworks/server/internal/shared/events"
	"github.com/prefabworks/server/internal/shared/lock"
	"github.com/prefabworks/server/internal/shared/metrics"
	"github.com/prefabworks/server/internal/shared/random"
	"go.uber.org/zap"
)

// EventPublisher publishes accepted transition events. The event bus
// satisfies this.
type EventPublisher interface {
	Publish(event events.Event)
}

// Service implements order operations. Every mutating call runs under the
// per-order lock: load, transition, optimistic save, then publish. Events
// are only published after the save succeeds.
type Service struct {
	repo    Repository
	sm      *StateMachine
	pm      *PaymentMachine
	policy  *CancellationPolicy
	locks   *lock.KeyedMutex
	bus     EventPublisher
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a new order service.
func NewService(repo Repository, bus EventPublisher, m *metrics.Metrics, logger *zap.Logger) *Service {
	sm := NewStateMachine()
	return &Service{
		repo:    repo,
		sm:      sm,
		pm:      NewPaymentMachine(),
		policy:  NewCancellationPolicy(sm),
		locks:   lock.NewKeyedMutex(),
		bus:     bus,
		metrics: m,
		logger:  logger,
	}
}

// CreateOrder places a new order in pending status.
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	if !req.TotalAmount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, req.TotalAmount)
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
	}
	if !req.PaymentMethod.Valid() || !req.PaymentMode.Valid() || !req.PaymentTiming.Valid() {
		return nil, ErrInvalidPayment
	}

	now := time.Now()
	order := &Order{
		ID:          uuid.New(),
		OrderNo:     generateOrderNo(),
		CustomerID:  req.CustomerID,
		Status:      OrderStatusPending,
		TotalAmount: req.TotalAmount,
		Payment: PaymentInfo{
			Method: req.PaymentMethod,
			Mode:   req.PaymentMode,
			Timing: req.PaymentTiming,
			Status: PaymentStatusPending,
		},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.PaymentMethod == PaymentMethodInstallment {
		order.Payment.NextStage = StageInitial
	}

	for _, item := range req.Items {
		order.Items = append(order.Items, OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("order_no", order.OrderNo),
		zap.String("payment_method", string(order.Payment.Method)),
	)

	return order, nil
}

// GetOrder returns an order with its items.
func (s *Service) GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	return s.repo.GetOrderWithItems(ctx, orderID)
}

// GetOrderByNo returns an order by its reference number.
func (s *Service) GetOrderByNo(ctx context.Context, orderNo string) (*Order, error) {
	return s.repo.GetOrderByNo(ctx, orderNo)
}

// ListOrders returns orders matching the filter.
func (s *Service) ListOrders(ctx context.Context, filter *OrderFilter, pagination *Pagination) ([]*Order, int64, error) {
	return s.repo.ListOrders(ctx, filter, pagination)
}

// UpdateStatus moves an order to a new status.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, to OrderStatus, actorRole string) (*Order, error) {
	unlock := s.locks.Lock(orderID.String())
	defer unlock()

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	event, err := s.sm.Transition(order, to, actorRole)
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordTransition(event.From, event.To)
	}
	s.bus.Publish(event)

	s.logger.Info("order status changed",
		zap.String("order_id", orderID.String()),
		zap.String("from", event.From),
		zap.String("to", event.To),
		zap.String("actor_role", actorRole),
	)

	return order, nil
}

// Cancel cancels a pending order.
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID, actorRole string) (*Order, error) {
	unlock := s.locks.Lock(orderID.String())
	defer unlock()

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	event, err := s.policy.Cancel(order, actorRole)
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordTransition(event.From, event.To)
	}
	s.bus.Publish(event)

	s.logger.Info("order cancelled",
		zap.String("order_id", orderID.String()),
		zap.String("actor_role", actorRole),
	)

	return order, nil
}

// ConfirmFullPayment confirms the single payment of a full-method order.
func (s *Service) ConfirmFullPayment(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	unlock := s.locks.Lock(orderID.String())
	defer unlock()

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	event, err := s.pm.ConfirmFullPayment(order)
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPayment("full")
	}
	s.bus.Publish(event)

	s.logger.Info("full payment confirmed",
		zap.String("order_id", orderID.String()),
		zap.String("amount", event.Amount.String()),
	)

	return order, nil
}

// SubmitStagePayment confirms an installment stage with its receipts.
func (s *Service) SubmitStagePayment(ctx context.Context, orderID uuid.UUID, stage InstallmentStage, receiptRefs []string) (*Order, error) {
	unlock := s.locks.Lock(orderID.String())
	defer unlock()

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	event, err := s.pm.SubmitStagePayment(order, stage, receiptRefs)
	if err != nil {
		s.recordRejection(err)
		return nil, err
	}

	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordPayment(string(stage))
	}
	s.bus.Publish(event)

	s.logger.Info("stage payment confirmed",
		zap.String("order_id", orderID.String()),
		zap.String("stage", string(stage)),
		zap.String("amount", event.Amount.String()),
		zap.String("remaining", event.RemainingBalance.String()),
	)

	return order, nil
}

// PaymentSummary returns the ledger view of an order.
func (s *Service) PaymentSummary(ctx context.Context, orderID uuid.UUID) (*PaymentSummaryResponse, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	summary := &PaymentSummaryResponse{
		OrderID:          order.ID,
		PaymentMethod:    order.Payment.Method,
		PaymentStatus:    order.Payment.Status,
		TotalAmount:      order.TotalAmount,
		PaidAmount:       PaidAmount(order),
		RemainingBalance: RemainingBalance(order),
	}

	if order.Payment.Method == PaymentMethodInstallment {
		amounts, err := AmountsForStages(order.TotalAmount)
		if err != nil {
			return nil, err
		}
		summary.StageAmounts = &amounts
		if next, ok := NextPayableStage(&order.Payment); ok {
			summary.NextStage = string(next)
		}
	}

	return summary, nil
}

// recordRejection counts a rejected transition by its error kind.
func (s *Service) recordRejection(err error) {
	if s.metrics == nil {
		return
	}

	reason := "unknown"
	switch {
	case errors.Is(err, ErrInvalidTransition):
		reason = "invalid_transition"
	case errors.Is(err, ErrPaymentIncomplete):
		reason = "payment_incomplete"
	case errors.Is(err, ErrWrongPaymentMethod):
		reason = "wrong_payment_method"
	case errors.Is(err, ErrAlreadyPaid):
		reason = "already_paid"
	case errors.Is(err, ErrStageOutOfOrder):
		reason = "stage_out_of_order"
	case errors.Is(err, ErrMissingReceipt):
		reason = "missing_receipt"
	case errors.Is(err, ErrNotCancellable):
		reason = "not_cancellable"
	}
	s.metrics.RecordRejection(reason)
}

// --- Helpers ---

func generateOrderNo() string {
	now := time.Now()
	suffix := random.UpperAlphaNum(5)
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

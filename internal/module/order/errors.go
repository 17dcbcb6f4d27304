package order

import "errors"

// Business-rule rejections. All of them leave the order unmodified.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrPaymentIncomplete  = errors.New("order is not fully paid")
	ErrWrongPaymentMethod = errors.New("operation does not match payment method")
	ErrAlreadyPaid        = errors.New("order is already fully paid")
	ErrStageOutOfOrder    = errors.New("installment stage is not next in sequence")
	ErrMissingReceipt     = errors.New("at least one payment receipt is required")
	ErrNotCancellable     = errors.New("order can no longer be cancelled")
	ErrEmptyOrder         = errors.New("order must contain at least one product")
	ErrInvalidQuantity    = errors.New("product quantity must be at least 1")
	ErrInvalidPayment     = errors.New("invalid payment details")

	// ErrConflict signals a lost concurrent-modification race. Unlike the
	// rejections above it is safe to retry from a fresh load.
	ErrConflict = errors.New("order was modified concurrently")
)

// Programmer errors, signaled distinctly from business rejections.
var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrUnknownStage  = errors.New("unknown installment stage")
	ErrUnknownStatus = errors.New("unknown order status")
)

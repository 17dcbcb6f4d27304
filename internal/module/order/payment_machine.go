package order

import (
	"fmt"

	"github.com/prefabworks/server/internal/shared/events"
	"github.com/shopspring/decimal"
)

// PaymentMachine validates and applies payment status transitions. Payment
// status only ever advances through these two operations; there is no
// direct setter.
type PaymentMachine struct{}

// NewPaymentMachine creates a new payment state machine.
func NewPaymentMachine() *PaymentMachine {
	return &PaymentMachine{}
}

// ConfirmFullPayment confirms the single payment of a full-method order.
// Legal only while the payment status is still pending.
func (pm *PaymentMachine) ConfirmFullPayment(o *Order) (*events.PaymentConfirmedEvent, error) {
	if o.Payment.Method != PaymentMethodFull {
		return nil, fmt.Errorf("%w: method is %s", ErrWrongPaymentMethod, o.Payment.Method)
	}
	if o.Payment.Status == PaymentStatusFullyPaid {
		return nil, ErrAlreadyPaid
	}

	o.Payment.Status = PaymentStatusFullyPaid

	return events.NewPaymentConfirmedEvent(
		o.ID, o.CustomerID, o.OrderNo,
		string(o.Payment.Method), "",
		o.TotalAmount, decimal.Zero,
		string(o.Payment.Status),
	), nil
}

// SubmitStagePayment confirms an installment stage with its receipt
// references. The stage must be the single next payable stage; receipts are
// appended, never overwritten; the payment status advances to the stage's
// threshold. Nothing is mutated on rejection.
func (pm *PaymentMachine) SubmitStagePayment(o *Order, stage InstallmentStage, receiptRefs []string) (*events.PaymentConfirmedEvent, error) {
	if !stage.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStage, stage)
	}
	if o.Payment.Method != PaymentMethodInstallment {
		return nil, fmt.Errorf("%w: method is %s", ErrWrongPaymentMethod, o.Payment.Method)
	}

	next, ok := NextPayableStage(&o.Payment)
	if !ok || next != stage {
		return nil, fmt.Errorf("%w: submitted %s, payable %s", ErrStageOutOfOrder, stage, payableLabel(next, ok))
	}
	if len(receiptRefs) == 0 {
		return nil, ErrMissingReceipt
	}

	amounts, err := AmountsForStages(o.TotalAmount)
	if err != nil {
		return nil, err
	}
	amount, _ := amounts.ForStage(stage)

	status, _ := StatusForStage(stage)

	o.Payment.appendReceipts(stage, receiptRefs)
	o.Payment.Status = status
	if following, ok := StageAt(StageIndex(stage) + 1); ok {
		o.Payment.NextStage = following
	} else {
		o.Payment.NextStage = ""
	}

	return events.NewPaymentConfirmedEvent(
		o.ID, o.CustomerID, o.OrderNo,
		string(o.Payment.Method), string(stage),
		amount, RemainingBalance(o),
		string(o.Payment.Status),
	), nil
}

func payableLabel(stage InstallmentStage, ok bool) string {
	if !ok {
		return "none"
	}
	return string(stage)
}

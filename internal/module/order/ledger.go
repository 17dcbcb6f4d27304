package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// The payment ledger: stateless computations over an order's payment state.
// Invalid input here is a programmer error, not a business rejection.

var (
	fiftyPercent = decimal.NewFromFloat(0.5)
	fortyPercent = decimal.NewFromFloat(0.4)
	oneHundred   = decimal.NewFromInt(100)
)

// StageAmounts holds the three installment amounts for an order total.
// Initial and PreDelivery are rounded to cents; Final absorbs the rounding
// remainder so the three always sum exactly to the total.
type StageAmounts struct {
	Initial     decimal.Decimal `json:"initial"`
	PreDelivery decimal.Decimal `json:"pre_delivery"`
	Final       decimal.Decimal `json:"final"`
}

// ForStage returns the amount of a single stage.
func (a StageAmounts) ForStage(stage InstallmentStage) (decimal.Decimal, bool) {
	switch stage {
	case StageInitial:
		return a.Initial, true
	case StagePreDelivery:
		return a.PreDelivery, true
	case StageFinal:
		return a.Final, true
	default:
		return decimal.Zero, false
	}
}

// AmountsForStages splits a positive order total into the three installment
// amounts (50%, 40%, remainder).
func AmountsForStages(total decimal.Decimal) (StageAmounts, error) {
	if !total.IsPositive() {
		return StageAmounts{}, fmt.Errorf("%w: %s", ErrInvalidAmount, total)
	}

	initial := total.Mul(fiftyPercent).Round(2)
	preDelivery := total.Mul(fortyPercent).Round(2)
	final := total.Sub(initial).Sub(preDelivery)

	return StageAmounts{
		Initial:     initial,
		PreDelivery: preDelivery,
		Final:       final,
	}, nil
}

// CurrentStageIndex returns the index of the highest confirmed stage, or -1
// if nothing has been confirmed yet.
func CurrentStageIndex(p *PaymentInfo) int {
	switch p.Status {
	case PaymentStatusFiftyPaid:
		return 0
	case PaymentStatusNinetyPaid:
		return 1
	case PaymentStatusFullyPaid:
		return 2
	default:
		return -1
	}
}

// NextPayableStage returns the single stage that may be confirmed next.
// The second return is false once the order is fully paid.
func NextPayableStage(p *PaymentInfo) (InstallmentStage, bool) {
	return StageAt(CurrentStageIndex(p) + 1)
}

// PaidAmount returns the amount already confirmed, derived from the payment
// status percentage applied to the order total.
func PaidAmount(o *Order) decimal.Decimal {
	pct := decimal.NewFromInt(o.Payment.Status.Percent())
	return o.TotalAmount.Mul(pct).Div(oneHundred).Round(2)
}

// RemainingBalance returns the amount still owed on the order.
func RemainingBalance(o *Order) decimal.Decimal {
	return o.TotalAmount.Sub(PaidAmount(o))
}

package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInstallmentOrder(total string) *Order {
	o := newTestOrder(OrderStatusPending, PaymentStatusPending)
	o.TotalAmount = decimal.RequireFromString(total)
	o.Payment.NextStage = StageInitial
	return o
}

func newFullPaymentOrder(total string) *Order {
	o := newTestOrder(OrderStatusPending, PaymentStatusPending)
	o.TotalAmount = decimal.RequireFromString(total)
	o.Payment.Method = PaymentMethodFull
	return o
}

func TestConfirmFullPayment(t *testing.T) {
	pm := NewPaymentMachine()

	t.Run("pending goes straight to fully paid", func(t *testing.T) {
		o := newFullPaymentOrder("100000")

		event, err := pm.ConfirmFullPayment(o)
		require.NoError(t, err)

		assert.Equal(t, PaymentStatusFullyPaid, o.Payment.Status)
		assert.True(t, o.IsFullyPaid())
		assert.True(t, o.TotalAmount.Equal(event.Amount))
		assert.True(t, decimal.Zero.Equal(event.RemainingBalance))
		assert.Equal(t, string(PaymentStatusFullyPaid), event.PaymentStatus)
		assert.Empty(t, event.Stage)
	})

	t.Run("double confirmation rejected", func(t *testing.T) {
		o := newFullPaymentOrder("100000")

		_, err := pm.ConfirmFullPayment(o)
		require.NoError(t, err)

		_, err = pm.ConfirmFullPayment(o)
		assert.ErrorIs(t, err, ErrAlreadyPaid)
		assert.Equal(t, PaymentStatusFullyPaid, o.Payment.Status)
	})

	t.Run("installment orders cannot pay in full", func(t *testing.T) {
		o := newInstallmentOrder("100000")

		_, err := pm.ConfirmFullPayment(o)
		assert.ErrorIs(t, err, ErrWrongPaymentMethod)
		assert.Equal(t, PaymentStatusPending, o.Payment.Status)
	})
}

func TestSubmitStagePayment(t *testing.T) {
	pm := NewPaymentMachine()

	t.Run("full installment walk", func(t *testing.T) {
		o := newInstallmentOrder("100000")

		event, err := pm.SubmitStagePayment(o, StageInitial, []string{"receipt-1"})
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusFiftyPaid, o.Payment.Status)
		assert.Equal(t, StagePreDelivery, o.Payment.NextStage)
		assert.True(t, decimal.NewFromInt(50000).Equal(event.Amount))
		assert.True(t, decimal.NewFromInt(50000).Equal(event.RemainingBalance))

		event, err = pm.SubmitStagePayment(o, StagePreDelivery, []string{"receipt-2"})
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusNinetyPaid, o.Payment.Status)
		assert.Equal(t, StageFinal, o.Payment.NextStage)
		assert.True(t, decimal.NewFromInt(40000).Equal(event.Amount))
		assert.True(t, decimal.NewFromInt(10000).Equal(event.RemainingBalance))

		event, err = pm.SubmitStagePayment(o, StageFinal, []string{"receipt-3"})
		require.NoError(t, err)
		assert.Equal(t, PaymentStatusFullyPaid, o.Payment.Status)
		assert.Empty(t, o.Payment.NextStage)
		assert.True(t, decimal.NewFromInt(10000).Equal(event.Amount))
		assert.True(t, decimal.Zero.Equal(event.RemainingBalance))
		assert.True(t, o.IsFullyPaid())
	})

	t.Run("stages must be confirmed in sequence", func(t *testing.T) {
		o := newInstallmentOrder("100000")

		_, err := pm.SubmitStagePayment(o, StagePreDelivery, []string{"receipt-1"})
		assert.ErrorIs(t, err, ErrStageOutOfOrder)

		_, err = pm.SubmitStagePayment(o, StageFinal, []string{"receipt-1"})
		assert.ErrorIs(t, err, ErrStageOutOfOrder)

		assert.Equal(t, PaymentStatusPending, o.Payment.Status)
		assert.Empty(t, o.Payment.InitialReceipts)
	})

	t.Run("confirmed stage cannot be resubmitted", func(t *testing.T) {
		o := newInstallmentOrder("100000")

		_, err := pm.SubmitStagePayment(o, StageInitial, []string{"receipt-1"})
		require.NoError(t, err)

		_, err = pm.SubmitStagePayment(o, StageInitial, []string{"receipt-dup"})
		assert.ErrorIs(t, err, ErrStageOutOfOrder)
		assert.Equal(t, PaymentStatusFiftyPaid, o.Payment.Status)
		assert.Equal(t, []string{"receipt-1"}, []string(o.Payment.InitialReceipts))
	})

	t.Run("fully paid order accepts nothing", func(t *testing.T) {
		o := newInstallmentOrder("100000")
		o.Payment.Status = PaymentStatusFullyPaid
		o.Payment.NextStage = ""

		for _, stage := range StageOrder() {
			_, err := pm.SubmitStagePayment(o, stage, []string{"receipt-x"})
			assert.ErrorIs(t, err, ErrStageOutOfOrder, "stage %s", stage)
		}
	})

	t.Run("receipts are required", func(t *testing.T) {
		o := newInstallmentOrder("100000")

		_, err := pm.SubmitStagePayment(o, StageInitial, nil)
		assert.ErrorIs(t, err, ErrMissingReceipt)

		_, err = pm.SubmitStagePayment(o, StageInitial, []string{})
		assert.ErrorIs(t, err, ErrMissingReceipt)

		assert.Equal(t, PaymentStatusPending, o.Payment.Status)
	})

	t.Run("receipts append without overwriting", func(t *testing.T) {
		o := newInstallmentOrder("100000")

		_, err := pm.SubmitStagePayment(o, StageInitial, []string{"a", "b"})
		require.NoError(t, err)
		_, err = pm.SubmitStagePayment(o, StagePreDelivery, []string{"c"})
		require.NoError(t, err)

		assert.Equal(t, []string{"a", "b"}, []string(o.Payment.InitialReceipts))
		assert.Equal(t, []string{"c"}, []string(o.Payment.PreDeliveryReceipts))
		assert.Empty(t, o.Payment.FinalReceipts)
	})

	t.Run("full-method orders cannot pay in stages", func(t *testing.T) {
		o := newFullPaymentOrder("100000")

		_, err := pm.SubmitStagePayment(o, StageInitial, []string{"receipt-1"})
		assert.ErrorIs(t, err, ErrWrongPaymentMethod)
	})

	t.Run("unknown stage rejected", func(t *testing.T) {
		o := newInstallmentOrder("100000")

		_, err := pm.SubmitStagePayment(o, InstallmentStage("bogus"), []string{"receipt-1"})
		assert.ErrorIs(t, err, ErrUnknownStage)
	})

	t.Run("awkward total still sums exactly", func(t *testing.T) {
		o := newInstallmentOrder("33333.33")

		var paid decimal.Decimal
		for i, stage := range StageOrder() {
			event, err := pm.SubmitStagePayment(o, stage, []string{"r"})
			require.NoError(t, err, "stage %d", i)
			paid = paid.Add(event.Amount)
		}

		assert.True(t, o.TotalAmount.Equal(paid))
		assert.True(t, o.IsFullyPaid())
	})
}

package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountsForStages(t *testing.T) {
	t.Run("round total splits cleanly", func(t *testing.T) {
		amounts, err := AmountsForStages(decimal.NewFromInt(100000))
		require.NoError(t, err)

		assert.True(t, decimal.NewFromInt(50000).Equal(amounts.Initial))
		assert.True(t, decimal.NewFromInt(40000).Equal(amounts.PreDelivery))
		assert.True(t, decimal.NewFromInt(10000).Equal(amounts.Final))
	})

	t.Run("final absorbs rounding remainder", func(t *testing.T) {
		// 0.01 * 0.5 rounds to 0.01, 0.01 * 0.4 rounds to 0.00
		amounts, err := AmountsForStages(decimal.RequireFromString("0.01"))
		require.NoError(t, err)

		sum := amounts.Initial.Add(amounts.PreDelivery).Add(amounts.Final)
		assert.True(t, decimal.RequireFromString("0.01").Equal(sum))
	})

	t.Run("stages always sum to total", func(t *testing.T) {
		totals := []string{
			"100000", "99999.99", "0.03", "12345.67", "0.10", "33333.33", "777777.77",
		}
		for _, raw := range totals {
			total := decimal.RequireFromString(raw)
			amounts, err := AmountsForStages(total)
			require.NoError(t, err, raw)

			sum := amounts.Initial.Add(amounts.PreDelivery).Add(amounts.Final)
			assert.True(t, total.Equal(sum), "total %s split to %s + %s + %s",
				raw, amounts.Initial, amounts.PreDelivery, amounts.Final)
		}
	})

	t.Run("zero and negative totals rejected", func(t *testing.T) {
		_, err := AmountsForStages(decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = AmountsForStages(decimal.NewFromInt(-100))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("ForStage lookup", func(t *testing.T) {
		amounts, err := AmountsForStages(decimal.NewFromInt(1000))
		require.NoError(t, err)

		initial, ok := amounts.ForStage(StageInitial)
		assert.True(t, ok)
		assert.True(t, decimal.NewFromInt(500).Equal(initial))

		_, ok = amounts.ForStage(InstallmentStage("bogus"))
		assert.False(t, ok)
	})
}

func TestNextPayableStage(t *testing.T) {
	t.Run("fresh order pays initial first", func(t *testing.T) {
		p := &PaymentInfo{Status: PaymentStatusPending}
		stage, ok := NextPayableStage(p)
		assert.True(t, ok)
		assert.Equal(t, StageInitial, stage)
	})

	t.Run("advances through the sequence", func(t *testing.T) {
		p := &PaymentInfo{Status: PaymentStatusFiftyPaid}
		stage, ok := NextPayableStage(p)
		assert.True(t, ok)
		assert.Equal(t, StagePreDelivery, stage)

		p.Status = PaymentStatusNinetyPaid
		stage, ok = NextPayableStage(p)
		assert.True(t, ok)
		assert.Equal(t, StageFinal, stage)
	})

	t.Run("nothing payable once fully paid", func(t *testing.T) {
		p := &PaymentInfo{Status: PaymentStatusFullyPaid}
		_, ok := NextPayableStage(p)
		assert.False(t, ok)
	})
}

func TestPaidAmountAndRemainingBalance(t *testing.T) {
	newOrder := func(total string, status PaymentStatus) *Order {
		return &Order{
			TotalAmount: decimal.RequireFromString(total),
			Payment:     PaymentInfo{Status: status},
		}
	}

	t.Run("pending owes everything", func(t *testing.T) {
		o := newOrder("100000", PaymentStatusPending)
		assert.True(t, decimal.Zero.Equal(PaidAmount(o)))
		assert.True(t, decimal.NewFromInt(100000).Equal(RemainingBalance(o)))
	})

	t.Run("fifty percent paid", func(t *testing.T) {
		o := newOrder("100000", PaymentStatusFiftyPaid)
		assert.True(t, decimal.NewFromInt(50000).Equal(PaidAmount(o)))
		assert.True(t, decimal.NewFromInt(50000).Equal(RemainingBalance(o)))
	})

	t.Run("ninety percent paid", func(t *testing.T) {
		o := newOrder("100000", PaymentStatusNinetyPaid)
		assert.True(t, decimal.NewFromInt(90000).Equal(PaidAmount(o)))
		assert.True(t, decimal.NewFromInt(10000).Equal(RemainingBalance(o)))
	})

	t.Run("fully paid owes nothing", func(t *testing.T) {
		o := newOrder("99999.99", PaymentStatusFullyPaid)
		assert.True(t, decimal.RequireFromString("99999.99").Equal(PaidAmount(o)))
		assert.True(t, decimal.Zero.Equal(RemainingBalance(o)))
	})
}

func TestCurrentStageIndex(t *testing.T) {
	assert.Equal(t, -1, CurrentStageIndex(&PaymentInfo{Status: PaymentStatusPending}))
	assert.Equal(t, 0, CurrentStageIndex(&PaymentInfo{Status: PaymentStatusFiftyPaid}))
	assert.Equal(t, 1, CurrentStageIndex(&PaymentInfo{Status: PaymentStatusNinetyPaid}))
	assert.Equal(t, 2, CurrentStageIndex(&PaymentInfo{Status: PaymentStatusFullyPaid}))
}

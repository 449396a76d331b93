package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile_DerivesAllTotals(t *testing.T) {
	snap := Reconcile([]Line{
		{Rate: 300, Qty: 3, TaxPercent: 0},
	}, Advances{Cash: 150})

	assert.Equal(t, SourceComputed, snap.Source)
	assert.Equal(t, 900.0, snap.Subtotal)
	assert.Equal(t, 900.0, snap.PaymentEstimate)
	assert.Equal(t, 900.0, snap.FinalAmount)
	assert.Equal(t, 150.0, snap.TotalAdvance)
	assert.Equal(t, 750.0, snap.Balance)
}

func TestReconcile_TaxAndAdvance(t *testing.T) {
	lines := []Line{
		{Rate: 200, Qty: 1, TaxPercent: 10},
		{Rate: 700, Qty: 1, TaxPercent: 0},
	}
	snap := Reconcile(lines, Advances{Cash: 100, CardUpi: 50})

	assert.Equal(t, 900.0, snap.Subtotal)
	assert.Equal(t, 20.0, snap.TaxAmount)
	assert.Equal(t, 920.0, snap.PaymentEstimate)
	assert.Equal(t, 920.0, snap.FinalAmount)
	assert.Equal(t, 150.0, snap.TotalAdvance)
	assert.Equal(t, 770.0, snap.Balance)
}

func TestReconcile_DiscountReducesFinal(t *testing.T) {
	lines := []Line{
		{Rate: 500, Qty: 2, TaxPercent: 0, DiscountAmount: 100},
	}
	snap := Reconcile(lines, Advances{})

	assert.Equal(t, 1000.0, snap.PaymentEstimate)
	assert.Equal(t, 100.0, snap.DiscountAmount)
	assert.Equal(t, 900.0, snap.FinalAmount)
	assert.Equal(t, 900.0, snap.Balance)
}

func TestReconcile_BalanceNeverNegative(t *testing.T) {
	lines := []Line{{Rate: 100, Qty: 1}}
	snap := Reconcile(lines, Advances{Cash: 500})

	assert.Equal(t, 500.0, snap.TotalAdvance)
	assert.Equal(t, 0.0, snap.Balance)
}

func TestReconcile_RoundsEachStep(t *testing.T) {
	lines := []Line{
		{Rate: 33.337, Qty: 1, TaxPercent: 18},
	}
	snap := Reconcile(lines, Advances{})

	assert.Equal(t, 33.34, snap.Subtotal)
	assert.Equal(t, 6.0, snap.TaxAmount)
	assert.Equal(t, 39.34, snap.PaymentEstimate)
}

func TestFromStore_PassesThroughWithoutRecompute(t *testing.T) {
	// Values as the store would hand them back, including generated
	// columns. 1000.00 must survive display untouched even though a
	// recompute from hydrated lines might disagree.
	snap := FromStore(1200, 200, 0, 1200, 100, 100, 0, 0, 200, 1000)

	assert.Equal(t, SourceFromStore, snap.Source)
	assert.Equal(t, 1200.0, snap.PaymentEstimate)
	assert.Equal(t, 200.0, snap.TotalAdvance)
	assert.Equal(t, 1000.0, snap.Balance)
	assert.Equal(t, 1000.0, snap.Subtotal)
}

func TestMarkEdited_SwitchesToComputed(t *testing.T) {
	stored := FromStore(1200, 200, 0, 1200, 100, 100, 0, 0, 200, 1000)
	assert.Equal(t, SourceFromStore, stored.Source)

	lines := []Line{{Rate: 1000, Qty: 1, TaxPercent: 20}}
	edited := stored.MarkEdited(lines, Advances{Cash: 100, CardUpi: 100})

	assert.Equal(t, SourceComputed, edited.Source)
	assert.Equal(t, 1200.0, edited.FinalAmount)
	assert.Equal(t, 1000.0, edited.Balance)
}

func TestMarkEdited_RoundTripNoDrift(t *testing.T) {
	lines := []Line{
		{Rate: 333.33, Qty: 3, TaxPercent: 12},
		{Rate: 149.99, Qty: 2, TaxPercent: 5},
	}
	adv := Advances{Cash: 250.50, CardUpi: 99.49}

	first := Reconcile(lines, adv)
	stored := FromStore(
		first.PaymentEstimate, first.TaxAmount, first.DiscountAmount,
		first.FinalAmount, first.AdvanceCash, first.AdvanceCardUpi,
		first.AdvanceOther, first.ScheduleAmount, first.TotalAdvance,
		first.Balance,
	)
	second := stored.MarkEdited(lines, adv)

	assert.Equal(t, first.FinalAmount, second.FinalAmount)
	assert.Equal(t, first.Balance, second.Balance)
	assert.Equal(t, first.TaxAmount, second.TaxAmount)
}

func TestSourceString(t *testing.T) {
	assert.Equal(t, "computed", SourceComputed.String())
	assert.Equal(t, "from_store", SourceFromStore.String())
}

func TestParseAmount(t *testing.T) {
	assert.Equal(t, 150.0, ParseAmount("150"))
	assert.Equal(t, 99.95, ParseAmount(" 99.95 "))
	assert.Equal(t, 0.0, ParseAmount(""))
	assert.Equal(t, 0.0, ParseAmount("abc"))
	assert.Equal(t, 0.0, ParseAmount("12.3.4"))
	assert.Equal(t, 0.0, ParseAmount("NaN"))
	assert.Equal(t, 0.0, ParseAmount("Inf"))
	assert.Equal(t, -20.0, ParseAmount("-20"))
}

func TestLine_Amount(t *testing.T) {
	l := Line{Rate: 100, Qty: 2, TaxPercent: 10, DiscountAmount: 20}
	assert.Equal(t, 200.0, l.Base())
	assert.Equal(t, 20.0, l.Tax())
	assert.Equal(t, 220.0, l.TaxInclusiveTotal())
	assert.Equal(t, 200.0, l.Amount())
}

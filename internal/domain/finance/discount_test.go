package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistributeDiscount_ProRataByShare(t *testing.T) {
	lines := []Line{
		{Rate: 100, Qty: 1},
		{Rate: 300, Qty: 1},
	}
	out := DistributeDiscount(lines, 40)

	assert.Equal(t, 10.0, out[0].DiscountAmount)
	assert.Equal(t, 30.0, out[1].DiscountAmount)
	assert.Equal(t, 10.0, out[0].DiscountPercent)
	assert.Equal(t, 10.0, out[1].DiscountPercent)
}

func TestDistributeDiscount_SharesSumToDiscount(t *testing.T) {
	lines := []Line{
		{Rate: 100, Qty: 1},
		{Rate: 100, Qty: 1},
		{Rate: 100, Qty: 1},
	}
	out := DistributeDiscount(lines, 100)

	var sum float64
	for _, l := range out {
		sum += l.DiscountAmount
	}
	assert.Equal(t, 100.0, Round2(sum))
}

func TestDistributeDiscount_ZeroTotalGuard(t *testing.T) {
	lines := []Line{
		{Rate: 0, Qty: 0},
		{Rate: 0, Qty: 1},
	}
	out := DistributeDiscount(lines, 50)

	assert.Equal(t, 0.0, out[0].DiscountAmount)
	assert.Equal(t, 0.0, out[1].DiscountAmount)
}

func TestDistributeDiscount_ZeroLineGetsNothing(t *testing.T) {
	lines := []Line{
		{Rate: 200, Qty: 1},
		{Rate: 0, Qty: 1},
	}
	out := DistributeDiscount(lines, 20)

	assert.Equal(t, 20.0, out[0].DiscountAmount)
	assert.Equal(t, 0.0, out[1].DiscountAmount)
}

func TestDistributeDiscount_CappedAtLineTotals(t *testing.T) {
	lines := []Line{
		{Rate: 100, Qty: 1},
		{Rate: 300, Qty: 1},
	}
	out := DistributeDiscount(lines, 600)

	assert.Equal(t, 100.0, out[0].DiscountAmount)
	assert.Equal(t, 300.0, out[1].DiscountAmount)
	for _, l := range out {
		assert.GreaterOrEqual(t, l.Amount(), 0.0)
	}
}

func TestDistributeDiscount_NoDiscount(t *testing.T) {
	lines := []Line{{Rate: 200, Qty: 1, DiscountAmount: 5}}
	out := DistributeDiscount(lines, 0)

	assert.Equal(t, 5.0, out[0].DiscountAmount)
}

func TestDistributeDiscount_DoesNotMutateInput(t *testing.T) {
	lines := []Line{{Rate: 100, Qty: 1}}
	_ = DistributeDiscount(lines, 10)

	assert.Equal(t, 0.0, lines[0].DiscountAmount)
}

func TestSyncDiscountFromPercent(t *testing.T) {
	l := SyncDiscountFromPercent(Line{Rate: 100, Qty: 2, DiscountPercent: 10})
	assert.Equal(t, 20.0, l.DiscountAmount)
}

func TestSyncDiscountFromAmount(t *testing.T) {
	l := SyncDiscountFromAmount(Line{Rate: 100, Qty: 2, DiscountAmount: 50})
	assert.Equal(t, 25.0, l.DiscountPercent)

	zero := SyncDiscountFromAmount(Line{Rate: 0, Qty: 0, DiscountAmount: 50})
	assert.Equal(t, 0.0, zero.DiscountPercent)
}

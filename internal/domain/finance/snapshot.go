package finance

import (
	"math"
	"strconv"
	"strings"
)

// Source identifies which side computed a snapshot's derived totals.
type Source int

const (
	// SourceComputed means totals were derived locally from line items
	// and raw advance inputs.
	SourceComputed Source = 0
	// SourceFromStore means totals were read back from the database,
	// including its generated columns, and must not be recomputed until
	// a contributing field is edited.
	SourceFromStore Source = 1
)

func (s Source) String() string {
	if s == SourceFromStore {
		return "from_store"
	}
	return "computed"
}

// Line is the financial view of a single order item.
type Line struct {
	Rate            float64
	Qty             int
	TaxPercent      float64
	DiscountPercent float64
	DiscountAmount  float64
}

// Base returns the pre-tax line total.
func (l Line) Base() float64 {
	return Round2(l.Rate * float64(l.Qty))
}

// Tax returns the tax amount for the line.
func (l Line) Tax() float64 {
	return Round2(l.Base() * l.TaxPercent / 100)
}

// TaxInclusiveTotal returns rate*qty plus tax, before discount. This is
// the base used for pro-rata discount distribution.
func (l Line) TaxInclusiveTotal() float64 {
	return Round2(l.Base() + l.Tax())
}

// Amount returns the final payable amount of the line.
func (l Line) Amount() float64 {
	return Round2(l.TaxInclusiveTotal() - l.DiscountAmount)
}

// Advances carries the raw advance-payment inputs. total_advance and
// balance are generated by the store from these and are never written.
type Advances struct {
	Cash     float64
	CardUpi  float64
	Other    float64
	Schedule float64
}

// Snapshot is the canonical financial summary of an order. The Source tag
// travels with the record through its edit session so the computed and
// stored variants can never be silently conflated.
type Snapshot struct {
	Source          Source
	Subtotal        float64
	TaxAmount       float64
	DiscountAmount  float64
	PaymentEstimate float64
	FinalAmount     float64
	AdvanceCash     float64
	AdvanceCardUpi  float64
	AdvanceOther    float64
	ScheduleAmount  float64
	TotalAdvance    float64
	Balance         float64
}

// Reconcile derives the authoritative payment figures for a set of lines
// and raw advance inputs. Every derived step is rounded to two decimals to
// match the rounding of the store's generated columns.
func Reconcile(lines []Line, adv Advances) Snapshot {
	var subtotal, tax, discount float64
	for _, l := range lines {
		subtotal += l.Base()
		tax += l.Tax()
		discount += l.DiscountAmount
	}
	subtotal = Round2(subtotal)
	tax = Round2(tax)
	discount = Round2(discount)

	estimate := Round2(subtotal + tax)
	final := Round2(estimate - discount)
	totalAdvance := Round2(adv.Cash + adv.CardUpi + adv.Other)
	balance := Round2(math.Max(0, final-totalAdvance))

	return Snapshot{
		Source:          SourceComputed,
		Subtotal:        subtotal,
		TaxAmount:       tax,
		DiscountAmount:  discount,
		PaymentEstimate: estimate,
		FinalAmount:     final,
		AdvanceCash:     Round2(adv.Cash),
		AdvanceCardUpi:  Round2(adv.CardUpi),
		AdvanceOther:    Round2(adv.Other),
		ScheduleAmount:  Round2(adv.Schedule),
		TotalAdvance:    totalAdvance,
		Balance:         balance,
	}
}

// FromStore wraps totals loaded from the database without recomputing
// them. Recomputing here from partially-hydrated fields is exactly the
// bug that corrupts stored records, so the generated values pass through
// unchanged.
func FromStore(estimate, tax, discount, final, cash, cardUpi, other, schedule, totalAdvance, balance float64) Snapshot {
	return Snapshot{
		Source:          SourceFromStore,
		Subtotal:        Round2(estimate - tax),
		TaxAmount:       tax,
		DiscountAmount:  discount,
		PaymentEstimate: estimate,
		FinalAmount:     final,
		AdvanceCash:     cash,
		AdvanceCardUpi:  cardUpi,
		AdvanceOther:    other,
		ScheduleAmount:  schedule,
		TotalAdvance:    totalAdvance,
		Balance:         balance,
	}
}

// MarkEdited switches a stored snapshot to the computed path for the rest
// of the editing session. The tag never flips back to from_store; lines
// and advances must be the fully-hydrated current values.
func (s Snapshot) MarkEdited(lines []Line, adv Advances) Snapshot {
	return Reconcile(lines, adv)
}

// Round2 rounds a monetary value to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseAmount resolves a raw form input to a number. Malformed input is
// treated as zero so financial fields always resolve for display and
// persistence.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

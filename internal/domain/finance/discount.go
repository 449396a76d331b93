package finance

// DistributeDiscount spreads a single discount value across lines
// pro-rata by each line's tax-inclusive share. A line with a zero
// tax-inclusive total receives no discount. The last line absorbs the
// rounding remainder so the shares always sum to the applied discount.
func DistributeDiscount(lines []Line, discount float64) []Line {
	out := make([]Line, len(lines))
	copy(out, lines)
	if discount <= 0 || len(out) == 0 {
		return out
	}

	var sum float64
	for _, l := range out {
		sum += l.TaxInclusiveTotal()
	}
	if sum <= 0 {
		return out
	}

	discount = Round2(discount)
	// A discount can never take a line below zero, so the whole discount
	// is capped at what the lines are worth.
	if discount > sum {
		discount = Round2(sum)
	}
	var allocated float64
	lastNonZero := -1
	for i := range out {
		total := out[i].TaxInclusiveTotal()
		if total <= 0 {
			out[i].DiscountAmount = 0
			out[i].DiscountPercent = 0
			continue
		}
		share := Round2(discount * total / sum)
		out[i].DiscountAmount = share
		out[i].DiscountPercent = Round2(share / total * 100)
		allocated += share
		lastNonZero = i
	}

	// Rounding drift lands on the last line that took a share, clamped so
	// absorption never pushes that line's amount negative.
	if lastNonZero >= 0 {
		drift := Round2(discount - Round2(allocated))
		if drift != 0 {
			total := out[lastNonZero].TaxInclusiveTotal()
			amount := Round2(out[lastNonZero].DiscountAmount + drift)
			if amount > total {
				amount = total
			}
			out[lastNonZero].DiscountAmount = amount
			out[lastNonZero].DiscountPercent = Round2(amount / total * 100)
		}
	}
	return out
}

// SyncDiscountFromPercent recomputes the line's discount amount after its
// percent was edited directly.
func SyncDiscountFromPercent(l Line) Line {
	l.DiscountAmount = Round2(l.TaxInclusiveTotal() * l.DiscountPercent / 100)
	return l
}

// SyncDiscountFromAmount recomputes the line's discount percent after its
// amount was edited directly. A zero base leaves the percent at zero.
func SyncDiscountFromAmount(l Line) Line {
	total := l.TaxInclusiveTotal()
	if total <= 0 {
		l.DiscountPercent = 0
		return l
	}
	l.DiscountPercent = Round2(l.DiscountAmount / total * 100)
	return l
}

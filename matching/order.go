package matching

import (
	"github.com/shopspring/decimal"
)

// Order is a resting limit order at a price point. Orders at the same price
// point are filled first placed, first filled: an order is consumed once the
// point's TotalFilled cursor moves past the cumulative quantity placed before
// it, so no per-order bookkeeping happens during matching.
type Order struct {
	ID      uint64          `json:"id"`
	Owner   uint64          `json:"owner"`
	Amount  decimal.Decimal `json:"amount"`
	Claimed decimal.Decimal `json:"claimed"`

	// PlacedBefore is the cumulative quantity placed at the price point
	// before this order. Cancellations of earlier orders shrink it.
	PlacedBefore decimal.Decimal `json:"placed_before"`
}

// Deleted reports whether the order is no longer live. The record is kept so
// that later lookups can tell a deleted order apart from one that never
// existed.
func (o *Order) Deleted() bool {
	return o.Owner == 0
}

// Filled returns the portion of the order consumed by matching, given the
// price point's TotalFilled cursor.
func (o *Order) Filled(totalFilled decimal.Decimal) decimal.Decimal {
	filled := totalFilled.Sub(o.PlacedBefore)

	if filled.IsNegative() {
		return decimal.Zero
	}

	return decimal.Min(filled, o.Amount)
}

// Available returns the unfilled, cancelable remainder of the order.
func (o *Order) Available(totalFilled decimal.Decimal) decimal.Decimal {
	return o.Amount.Sub(o.Filled(totalFilled))
}

// Unclaimed returns the filled quantity whose proceeds have not been
// withdrawn yet.
func (o *Order) Unclaimed(totalFilled decimal.Decimal) decimal.Decimal {
	return o.Filled(totalFilled).Sub(o.Claimed)
}

package matching

import (
	"github.com/shopspring/decimal"
)

// Fill consumes liquidity from the given side of the book, best price first:
// the lowest asks when side is SideSell (a buyer taking), the highest bids
// when side is SideBuy (a seller taking).
//
// priceBound stops the walk before a price the taker would not accept: a
// maximum for consuming sells, a minimum for consuming buys. maxAmount caps
// the matched quantity and must be nonzero. maxPricePoints caps how many
// distinct price points may be consumed from, bounding the cost of a single
// call; the returned count is exact so callers can enforce a strict per-call
// limit.
//
// Consideration accumulates price times the amount consumed at each point,
// never an average, so it is exact.
func (b *Book) Fill(side Side, priceBound, maxAmount decimal.Decimal, maxPricePoints int) (decimal.Decimal, decimal.Decimal, int, error) {
	b.Lock()
	defer b.Unlock()

	return b.fill(side, priceBound, maxAmount, maxPricePoints, true)
}

// QuoteFill computes what Fill would match and cost without consuming
// anything, so settlement can happen before the book moves.
func (b *Book) QuoteFill(side Side, priceBound, maxAmount decimal.Decimal, maxPricePoints int) (decimal.Decimal, decimal.Decimal, int, error) {
	b.Lock()
	defer b.Unlock()

	return b.fill(side, priceBound, maxAmount, maxPricePoints, false)
}

func (b *Book) fill(side Side, priceBound, maxAmount decimal.Decimal, maxPricePoints int, apply bool) (decimal.Decimal, decimal.Decimal, int, error) {
	if !side.Valid() {
		return decimal.Zero, decimal.Zero, 0, ErrInvalidArgument
	}

	if !maxAmount.IsPositive() {
		return decimal.Zero, decimal.Zero, 0, ErrInvalidAmount
	}

	if maxPricePoints <= 0 {
		return decimal.Zero, decimal.Zero, 0, ErrInvalidArgument
	}

	matched := decimal.Zero
	consideration := decimal.Zero
	remaining := maxAmount
	visited := 0

	it := b.sideTree(side).Iterator()
	it.End()

	for it.Prev() && remaining.IsPositive() {
		point := it.Value().(*PricePoint)

		if side == SideSell && point.Price.GreaterThan(priceBound) {
			break
		}

		if side == SideBuy && point.Price.LessThan(priceBound) {
			break
		}

		// Exhausted price points stay in the book for claim accounting
		// but contribute nothing and do not count against
		// maxPricePoints.
		available := point.Available()
		if available.IsZero() {
			continue
		}

		if visited == maxPricePoints {
			break
		}

		amount := decimal.Min(remaining, available)

		if apply {
			point.TotalFilled = point.TotalFilled.Add(amount)
		}

		matched = matched.Add(amount)
		consideration = consideration.Add(point.Price.Mul(amount))
		remaining = remaining.Sub(amount)
		visited++

		if apply {
			b.publishChange(point)
		}
	}

	return matched, consideration, visited, nil
}

package matching

import (
	"github.com/shopspring/decimal"
)

// PricePointEntry is one row of the price discovery listing.
type PricePointEntry struct {
	Price     decimal.Decimal `json:"price"`
	Available decimal.Decimal `json:"available"`
}

// PricePoints lists active price points of both sides in best-to-worst
// order, up to limit entries per side. A zero prev price starts at the best
// price; otherwise the listing resumes at the next price strictly worse than
// prev. Exhausted price points are omitted. Read only.
func (b *Book) PricePoints(prevSellPrice decimal.Decimal, sellLimit int, prevBuyPrice decimal.Decimal, buyLimit int) ([]PricePointEntry, []PricePointEntry) {
	b.Lock()
	defer b.Unlock()

	sells := b.listSide(SideSell, prevSellPrice, sellLimit)
	buys := b.listSide(SideBuy, prevBuyPrice, buyLimit)

	return sells, buys
}

func (b *Book) listSide(side Side, prev decimal.Decimal, limit int) []PricePointEntry {
	entries := make([]PricePointEntry, 0, limit)

	it := b.sideTree(side).Iterator()
	it.End()

	for it.Prev() && len(entries) < limit {
		point := it.Value().(*PricePoint)

		if !prev.IsZero() {
			if side == SideSell && point.Price.LessThanOrEqual(prev) {
				continue
			}

			if side == SideBuy && point.Price.GreaterThanOrEqual(prev) {
				continue
			}
		}

		available := point.Available()
		if available.IsZero() {
			continue
		}

		entries = append(entries, PricePointEntry{
			Price:     point.Price,
			Available: available,
		})
	}

	return entries
}

package matching

import (
	"github.com/shopspring/decimal"
)

// PricePoint aggregates every order ever placed at one price on one side.
// TotalPlaced shrinks when orders are canceled, TotalFilled only grows.
// Invariant: 0 <= TotalFilled <= TotalPlaced.
//
// A price point is never removed from the book: once exhausted it stays
// around with zero available liquidity so that filled orders remain
// claimable.
type PricePoint struct {
	Side        Side            `json:"side"`
	Price       decimal.Decimal `json:"price"`
	TotalPlaced decimal.Decimal `json:"total_placed"`
	TotalFilled decimal.Decimal `json:"total_filled"`
	LastOrderID uint64          `json:"last_order_id"`

	orders map[uint64]*Order
}

type PricePointKey struct {
	Side  Side
	Price decimal.Decimal
}

func NewPricePoint(side Side, price decimal.Decimal) *PricePoint {
	return &PricePoint{
		Side:        side,
		Price:       price,
		TotalPlaced: decimal.Zero,
		TotalFilled: decimal.Zero,
		orders:      make(map[uint64]*Order),
	}
}

func (p *PricePoint) Key() *PricePointKey {
	return &PricePointKey{
		Side:  p.Side,
		Price: p.Price,
	}
}

// Available returns the liquidity still restable at this price.
func (p *PricePoint) Available() decimal.Decimal {
	return p.TotalPlaced.Sub(p.TotalFilled)
}

// Order returns the order with the given sequence id, or nil if no order with
// that id was ever placed here. Sequence ids start at 1, 0 never matches.
func (p *PricePoint) Order(id uint64) *Order {
	if id == 0 || id > p.LastOrderID {
		return nil
	}

	return p.orders[id]
}

func (p *PricePoint) append(owner uint64, amount decimal.Decimal) *Order {
	p.LastOrderID++

	order := &Order{
		ID:           p.LastOrderID,
		Owner:        owner,
		Amount:       amount,
		Claimed:      decimal.Zero,
		PlacedBefore: p.TotalPlaced,
	}

	p.orders[order.ID] = order
	p.TotalPlaced = p.TotalPlaced.Add(amount)

	return order
}

// reduceCursorsAfter moves the PlacedBefore cursor of every order placed
// after id back by amount. Called when an order cancels its unfilled
// residual so the FIFO fill accounting of later orders stays exact.
func (p *PricePoint) reduceCursorsAfter(id uint64, amount decimal.Decimal) {
	for next := id + 1; next <= p.LastOrderID; next++ {
		if order, ok := p.orders[next]; ok {
			order.PlacedBefore = order.PlacedBefore.Sub(amount)
		}
	}
}

// comparator orders price point keys so that tree.Right() is always the best
// price of the side: the lowest ask, the highest bid.
func comparator(a, b interface{}) int {
	this := a.(*PricePointKey)
	that := b.(*PricePointKey)

	switch {
	case this.Side == SideSell && this.Price.LessThan(that.Price):
		return 1

	case this.Side == SideSell && this.Price.GreaterThan(that.Price):
		return -1

	case this.Side == SideBuy && this.Price.LessThan(that.Price):
		return -1

	case this.Side == SideBuy && this.Price.GreaterThan(that.Price):
		return 1

	default:
		return 0
	}
}

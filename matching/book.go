package matching

import (
	"sync"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/shopspring/decimal"
)

type onChange func(side Side, price decimal.Decimal, available decimal.Decimal)

// Book is the whole order book state of one trading pair: every price point
// and every order on both sides. It is owned by the surrounding ledger and
// mutated only by the lifecycle operations, each of which validates all of
// its preconditions before touching any state.
//
// Amounts are in contracts of the traded asset, prices in the base asset per
// contract. Both are integer-valued decimals in the assets' smallest units.
type Book struct {
	sync.Mutex

	Symbol       string
	BaseUnit     string
	QuoteUnit    string
	PriceTick    decimal.Decimal
	ContractSize decimal.Decimal

	// FeeRate is the fraction of executed notional collected as fee,
	// expressed as a decimal in [0, 1), e.g. 0.0001. Collected fees are
	// floor-rounded to the asset's smallest unit.
	FeeRate decimal.Decimal

	Sells *redblacktree.Tree
	Buys  *redblacktree.Tree

	onChange onChange
}

func NewBook(symbol, baseUnit, quoteUnit string, priceTick, contractSize, feeRate decimal.Decimal) *Book {
	return &Book{
		Symbol:       symbol,
		BaseUnit:     baseUnit,
		QuoteUnit:    quoteUnit,
		PriceTick:    priceTick,
		ContractSize: contractSize,
		FeeRate:      feeRate,
		Sells:        redblacktree.NewWith(comparator),
		Buys:         redblacktree.NewWith(comparator),
	}
}

// OnChange registers a callback invoked with the new available liquidity of
// a price point whenever it changes. Used for depth publishing.
func (b *Book) OnChange(fn onChange) {
	b.onChange = fn
}

func (b *Book) publishChange(p *PricePoint) {
	if b.onChange != nil {
		b.onChange(p.Side, p.Price, p.Available())
	}
}

// Fee returns the fee collected on a gross settlement amount.
func (b *Book) Fee(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(b.FeeRate).Floor()
}

func (b *Book) sideTree(side Side) *redblacktree.Tree {
	if side == SideSell {
		return b.Sells
	}

	return b.Buys
}

func (b *Book) pricePoint(side Side, price decimal.Decimal) *PricePoint {
	key := &PricePointKey{Side: side, Price: price}

	if value, found := b.sideTree(side).Get(key); found {
		return value.(*PricePoint)
	}

	return nil
}

func (b *Book) pricePointOrCreate(side Side, price decimal.Decimal) *PricePoint {
	if point := b.pricePoint(side, price); point != nil {
		return point
	}

	point := NewPricePoint(side, price)
	b.sideTree(side).Put(point.Key(), point)

	return point
}

// PricePoint returns the price point at (side, price), or nil if no order
// was ever placed there.
func (b *Book) PricePoint(side Side, price decimal.Decimal) *PricePoint {
	b.Lock()
	defer b.Unlock()

	return b.pricePoint(side, price)
}

// ValidPrice reports whether price is nonzero and an exact multiple of the
// book's price tick.
func (b *Book) ValidPrice(price decimal.Decimal) bool {
	return b.validPrice(price)
}

func (b *Book) validPrice(price decimal.Decimal) bool {
	if !price.IsPositive() {
		return false
	}

	return price.Mod(b.PriceTick).IsZero()
}

// findOrder resolves (side, price, orderId) to a live order, mapping every
// miss to the error the caller should report.
func (b *Book) findOrder(side Side, price decimal.Decimal, orderID uint64) (*PricePoint, *Order, error) {
	if !side.Valid() {
		return nil, nil, ErrInvalidArgument
	}

	if !b.validPrice(price) {
		return nil, nil, ErrInvalidPrice
	}

	point := b.pricePoint(side, price)
	if point == nil {
		return nil, nil, ErrInvalidOrderID
	}

	order := point.Order(orderID)
	if order == nil {
		return nil, nil, ErrInvalidOrderID
	}

	if order.Deleted() {
		return nil, nil, ErrOrderDeleted
	}

	return point, order, nil
}

// Order returns the order record at (side, price, orderId), deleted records
// included. ErrInvalidOrderID if no such order was ever placed.
func (b *Book) Order(side Side, price decimal.Decimal, orderID uint64) (*Order, error) {
	b.Lock()
	defer b.Unlock()

	if !b.validPrice(price) {
		return nil, ErrInvalidPrice
	}

	point := b.pricePoint(side, price)
	if point == nil {
		return nil, ErrInvalidOrderID
	}

	order := point.Order(orderID)
	if order == nil {
		return nil, ErrInvalidOrderID
	}

	return order, nil
}

// Place appends a resting order at (side, price) and returns its sequence
// id. Placement never matches: a caller wanting a marketable limit order
// fills against the opposite side first and places only the residual.
func (b *Book) Place(side Side, price, amount decimal.Decimal, owner uint64) (uint64, error) {
	b.Lock()
	defer b.Unlock()

	if !side.Valid() || owner == 0 {
		return 0, ErrInvalidArgument
	}

	if !b.validPrice(price) {
		return 0, ErrInvalidPrice
	}

	if !amount.IsPositive() {
		return 0, ErrInvalidAmount
	}

	point := b.pricePointOrCreate(side, price)
	order := point.append(owner, amount)

	b.publishChange(point)

	return order.ID, nil
}

// Cancel removes the unfilled residual of an order. Any filled portion stays
// claimable. maxLastOrderId is a front-running guard: the cancel refuses to
// proceed if orders were placed at the price point after the caller took its
// snapshot of the book.
func (b *Book) Cancel(side Side, price decimal.Decimal, orderID uint64, maxLastOrderID uint64, caller uint64) (decimal.Decimal, error) {
	b.Lock()
	defer b.Unlock()

	point, order, err := b.findOrder(side, price, orderID)
	if err != nil {
		return decimal.Zero, err
	}

	if order.Owner != caller {
		return decimal.Zero, ErrUnauthorized
	}

	if point.LastOrderID > maxLastOrderID {
		return decimal.Zero, ErrOverMaxLastOrderID
	}

	available := order.Available(point.TotalFilled)
	if !available.IsPositive() {
		return decimal.Zero, ErrAlreadyFilled
	}

	order.Amount = order.Amount.Sub(available)
	point.TotalPlaced = point.TotalPlaced.Sub(available)
	point.reduceCursorsAfter(order.ID, available)

	if order.Claimed.Equal(order.Amount) {
		order.Owner = 0
	}

	b.publishChange(point)

	return available, nil
}

// Claim withdraws up to maxAmount of the order's filled-but-unsettled
// quantity and returns it along with the fee collected on the proceeds.
// Claiming zero is a valid no-op so that clients can retry idempotently.
//
// The fee is denominated in the asset the claim pays out: the base asset
// consideration for a sell order, the traded asset for a buy order.
func (b *Book) Claim(side Side, price decimal.Decimal, orderID uint64, maxAmount decimal.Decimal, caller uint64) (decimal.Decimal, decimal.Decimal, error) {
	b.Lock()
	defer b.Unlock()

	return b.claim(side, price, orderID, maxAmount, caller, true)
}

// QuoteClaim reports what Claim would pay out without recording the claim,
// so the payout can settle before the book moves.
func (b *Book) QuoteClaim(side Side, price decimal.Decimal, orderID uint64, maxAmount decimal.Decimal, caller uint64) (decimal.Decimal, decimal.Decimal, error) {
	b.Lock()
	defer b.Unlock()

	return b.claim(side, price, orderID, maxAmount, caller, false)
}

func (b *Book) claim(side Side, price decimal.Decimal, orderID uint64, maxAmount decimal.Decimal, caller uint64, apply bool) (decimal.Decimal, decimal.Decimal, error) {
	point, order, err := b.findOrder(side, price, orderID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	if order.Owner != caller {
		return decimal.Zero, decimal.Zero, ErrUnauthorized
	}

	if maxAmount.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrInvalidAmount
	}

	amount := decimal.Min(order.Unclaimed(point.TotalFilled), maxAmount)
	if amount.IsZero() {
		return decimal.Zero, decimal.Zero, nil
	}

	var gross decimal.Decimal
	if side == SideSell {
		gross = point.Price.Mul(amount)
	} else {
		gross = amount.Mul(b.ContractSize)
	}
	fee := b.Fee(gross)

	if apply {
		order.Claimed = order.Claimed.Add(amount)

		if order.Claimed.Equal(order.Amount) {
			order.Owner = 0
		}
	}

	return amount, fee, nil
}

// Transfer reassigns ownership of a live order. No accounting changes.
func (b *Book) Transfer(side Side, price decimal.Decimal, orderID uint64, newOwner uint64, caller uint64) error {
	b.Lock()
	defer b.Unlock()

	if newOwner == 0 {
		return ErrInvalidArgument
	}

	_, order, err := b.findOrder(side, price, orderID)
	if err != nil {
		return err
	}

	if order.Owner != caller {
		return ErrUnauthorized
	}

	order.Owner = newOwner

	return nil
}

package operator

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/obex/matching"
)

// Default bounds used when a caller leaves one unset: the most permissive
// value of the field's width.
const (
	DefaultMaxPricePoints = math.MaxUint8
	DefaultMaxLastOrderID = math.MaxUint64
)

// DefaultMaxSellPrice is the stand-in for an unbounded buy price walk.
var DefaultMaxSellPrice = decimal.New(1, 32)

// Vault moves balances of the pair's two assets between an owner and the
// book's escrow. It is the only settlement capability the operator needs;
// how transfers actually happen is a concern of the surrounding ledger.
type Vault interface {
	// Deposit moves amount of unit from the owner into book escrow.
	Deposit(unit string, owner uint64, amount decimal.Decimal) error
	// Withdraw moves amount of unit from book escrow to the owner.
	Withdraw(unit string, owner uint64, amount decimal.Decimal) error
}

// Operator is the convenience wrapper a market participant drives the book
// through. Every operation settles through the vault and reports its outcome
// through the notifier. Soft failures come back in the result record with no
// balance movement; ErrUnauthorized aborts, since a correctly-functioning
// caller never operates on someone else's behalf.
type Operator struct {
	Owner uint64

	vault    Vault
	notifier Notifier
}

func New(owner uint64, vault Vault, notifier Notifier) *Operator {
	return &Operator{
		Owner:    owner,
		vault:    vault,
		notifier: notifier,
	}
}

func (o *Operator) publish(book *matching.Book, event string, payload interface{}) {
	if o.notifier != nil {
		o.notifier.Publish(book.Symbol, event, payload)
	}
}

func (o *Operator) fail(book *matching.Book, err error) Result {
	o.publish(book, EventFailed, FailedEvent{Owner: o.Owner, Error: err.Error()})

	return failure(err)
}

// BuyAtMarket walks the sell side up to maxPrice, paying base asset
// consideration and receiving the bought contracts minus the fee.
//
// The consideration is quoted and deposited before the fill is applied, so
// a funding failure leaves the book untouched and comes back as a failed
// result.
func (o *Operator) BuyAtMarket(book *matching.Book, caller uint64, maxAmount, maxPrice decimal.Decimal, maxPricePoints int) (*BuyAtMarketResult, error) {
	if caller != o.Owner {
		return nil, matching.ErrUnauthorized
	}

	bought, paid, _, err := book.QuoteFill(matching.SideSell, maxPrice, maxAmount, maxPricePoints)
	if err != nil {
		if matching.IsSoftError(err) {
			return &BuyAtMarketResult{Result: o.fail(book, err)}, nil
		}

		return nil, err
	}

	fee := decimal.Zero
	if bought.IsPositive() {
		if err := o.vault.Deposit(book.QuoteUnit, o.Owner, paid); err != nil {
			return &BuyAtMarketResult{Result: o.fail(book, err)}, nil
		}

		if _, _, _, err := book.Fill(matching.SideSell, maxPrice, maxAmount, maxPricePoints); err != nil {
			return nil, err
		}

		gross := bought.Mul(book.ContractSize)
		fee = book.Fee(gross)

		if err := o.vault.Withdraw(book.BaseUnit, o.Owner, gross.Sub(fee)); err != nil {
			return nil, err
		}

		o.publish(book, EventBoughtAtMarket, BoughtAtMarketEvent{
			Owner:        o.Owner,
			AmountBought: bought,
			AmountPaid:   paid,
			Fee:          fee,
		})
	}

	return &BuyAtMarketResult{
		AmountBought: bought,
		AmountPaid:   paid,
		Fee:          fee,
	}, nil
}

// SellAtMarket walks the buy side down to minPrice, delivering the sold
// contracts and receiving base asset consideration minus the fee.
func (o *Operator) SellAtMarket(book *matching.Book, caller uint64, maxAmount, minPrice decimal.Decimal, maxPricePoints int) (*SellAtMarketResult, error) {
	if caller != o.Owner {
		return nil, matching.ErrUnauthorized
	}

	sold, received, _, err := book.QuoteFill(matching.SideBuy, minPrice, maxAmount, maxPricePoints)
	if err != nil {
		if matching.IsSoftError(err) {
			return &SellAtMarketResult{Result: o.fail(book, err)}, nil
		}

		return nil, err
	}

	fee := decimal.Zero
	if sold.IsPositive() {
		if err := o.vault.Deposit(book.BaseUnit, o.Owner, sold.Mul(book.ContractSize)); err != nil {
			return &SellAtMarketResult{Result: o.fail(book, err)}, nil
		}

		if _, _, _, err := book.Fill(matching.SideBuy, minPrice, maxAmount, maxPricePoints); err != nil {
			return nil, err
		}

		fee = book.Fee(received)

		if err := o.vault.Withdraw(book.QuoteUnit, o.Owner, received.Sub(fee)); err != nil {
			return nil, err
		}

		o.publish(book, EventSoldAtMarket, SoldAtMarketEvent{
			Owner:          o.Owner,
			AmountSold:     sold,
			AmountReceived: received,
			Fee:            fee,
		})
	}

	return &SellAtMarketResult{
		AmountSold:     sold,
		AmountReceived: received,
		Fee:            fee,
	}, nil
}

// PlaceBuyOrder is a marketable limit order: it buys whatever the sell side
// offers at or below price, then rests the unmatched residual as a buy
// order, escrowing its base asset cost.
func (o *Operator) PlaceBuyOrder(book *matching.Book, caller uint64, maxAmount, price decimal.Decimal, maxPricePoints int) (*PlaceBuyOrderResult, error) {
	if caller != o.Owner {
		return nil, matching.ErrUnauthorized
	}

	if !book.ValidPrice(price) {
		return &PlaceBuyOrderResult{Result: o.fail(book, matching.ErrInvalidPrice)}, nil
	}

	bought, paid, _, err := book.QuoteFill(matching.SideSell, price, maxAmount, maxPricePoints)
	if err != nil {
		if matching.IsSoftError(err) {
			return &PlaceBuyOrderResult{Result: o.fail(book, err)}, nil
		}

		return nil, err
	}

	placed := maxAmount.Sub(bought)

	// The whole cost settles up front: the fill consideration plus the
	// escrow of the residual. A funding failure leaves the book untouched.
	if err := o.vault.Deposit(book.QuoteUnit, o.Owner, paid.Add(price.Mul(placed))); err != nil {
		return &PlaceBuyOrderResult{Result: o.fail(book, err)}, nil
	}

	fee := decimal.Zero
	if bought.IsPositive() {
		if _, _, _, err := book.Fill(matching.SideSell, price, maxAmount, maxPricePoints); err != nil {
			return nil, err
		}

		gross := bought.Mul(book.ContractSize)
		fee = book.Fee(gross)

		if err := o.vault.Withdraw(book.BaseUnit, o.Owner, gross.Sub(fee)); err != nil {
			return nil, err
		}

		o.publish(book, EventBoughtAtMarket, BoughtAtMarketEvent{
			Owner:        o.Owner,
			AmountBought: bought,
			AmountPaid:   paid,
			Fee:          fee,
		})
	}

	var orderID uint64

	if placed.IsPositive() {
		orderID, err = book.Place(matching.SideBuy, price, placed, o.Owner)
		if err != nil {
			return nil, err
		}

		o.publish(book, EventPlacedBuyOrder, PlacedBuyOrderEvent{
			Owner:   o.Owner,
			Price:   price,
			Amount:  placed,
			OrderID: orderID,
		})
	}

	return &PlaceBuyOrderResult{
		AmountBought: bought,
		AmountPaid:   paid,
		Fee:          fee,
		AmountPlaced: placed,
		OrderID:      orderID,
	}, nil
}

// PlaceSellOrder mirrors PlaceBuyOrder on the other side: it sells into bids
// at or above price, then rests the residual, escrowing the contracts.
func (o *Operator) PlaceSellOrder(book *matching.Book, caller uint64, maxAmount, price decimal.Decimal, maxPricePoints int) (*PlaceSellOrderResult, error) {
	if caller != o.Owner {
		return nil, matching.ErrUnauthorized
	}

	if !book.ValidPrice(price) {
		return &PlaceSellOrderResult{Result: o.fail(book, matching.ErrInvalidPrice)}, nil
	}

	sold, received, _, err := book.QuoteFill(matching.SideBuy, price, maxAmount, maxPricePoints)
	if err != nil {
		if matching.IsSoftError(err) {
			return &PlaceSellOrderResult{Result: o.fail(book, err)}, nil
		}

		return nil, err
	}

	placed := maxAmount.Sub(sold)

	// Every contract is delivered up front: the sold ones settle, the
	// residual rests in escrow. A funding failure leaves the book untouched.
	if err := o.vault.Deposit(book.BaseUnit, o.Owner, maxAmount.Mul(book.ContractSize)); err != nil {
		return &PlaceSellOrderResult{Result: o.fail(book, err)}, nil
	}

	fee := decimal.Zero
	if sold.IsPositive() {
		if _, _, _, err := book.Fill(matching.SideBuy, price, maxAmount, maxPricePoints); err != nil {
			return nil, err
		}

		fee = book.Fee(received)

		if err := o.vault.Withdraw(book.QuoteUnit, o.Owner, received.Sub(fee)); err != nil {
			return nil, err
		}

		o.publish(book, EventSoldAtMarket, SoldAtMarketEvent{
			Owner:          o.Owner,
			AmountSold:     sold,
			AmountReceived: received,
			Fee:            fee,
		})
	}

	var orderID uint64

	if placed.IsPositive() {
		orderID, err = book.Place(matching.SideSell, price, placed, o.Owner)
		if err != nil {
			return nil, err
		}

		o.publish(book, EventPlacedSellOrder, PlacedSellOrderEvent{
			Owner:   o.Owner,
			Price:   price,
			Amount:  placed,
			OrderID: orderID,
		})
	}

	return &PlaceSellOrderResult{
		AmountSold:     sold,
		AmountReceived: received,
		Fee:            fee,
		AmountPlaced:   placed,
		OrderID:        orderID,
	}, nil
}

// CancelOrder removes the unfilled residual of one of the operator's resting
// orders and refunds its escrowed assets.
func (o *Operator) CancelOrder(book *matching.Book, caller uint64, side matching.Side, price decimal.Decimal, orderID, maxLastOrderID uint64) (*CancelOrderResult, error) {
	if caller != o.Owner {
		return nil, matching.ErrUnauthorized
	}

	canceled, err := book.Cancel(side, price, orderID, maxLastOrderID, o.Owner)
	if err != nil {
		if matching.IsSoftError(err) {
			return &CancelOrderResult{Result: o.fail(book, err)}, nil
		}

		return nil, err
	}

	if side == matching.SideBuy {
		err = o.vault.Withdraw(book.QuoteUnit, o.Owner, price.Mul(canceled))
	} else {
		err = o.vault.Withdraw(book.BaseUnit, o.Owner, canceled.Mul(book.ContractSize))
	}
	if err != nil {
		return nil, err
	}

	o.publish(book, EventOrderCanceled, OrderCanceledEvent{
		Owner:   o.Owner,
		Price:   price,
		OrderID: orderID,
		Amount:  canceled,
	})

	return &CancelOrderResult{AmountCanceled: canceled}, nil
}

// ClaimOrder withdraws settled proceeds of one of the operator's orders:
// base asset for a sell order, contracts for a buy order, minus the fee.
func (o *Operator) ClaimOrder(book *matching.Book, caller uint64, side matching.Side, price decimal.Decimal, orderID uint64, maxAmount decimal.Decimal) (*ClaimOrderResult, error) {
	if caller != o.Owner {
		return nil, matching.ErrUnauthorized
	}

	claimed, fee, err := book.QuoteClaim(side, price, orderID, maxAmount, o.Owner)
	if err != nil {
		if matching.IsSoftError(err) {
			return &ClaimOrderResult{Result: o.fail(book, err)}, nil
		}

		return nil, err
	}

	if claimed.IsPositive() {
		// Payout settles before the claim is recorded so a settlement
		// failure leaves the order claimable.
		if side == matching.SideSell {
			err = o.vault.Withdraw(book.QuoteUnit, o.Owner, price.Mul(claimed).Sub(fee))
		} else {
			err = o.vault.Withdraw(book.BaseUnit, o.Owner, claimed.Mul(book.ContractSize).Sub(fee))
		}
		if err != nil {
			return nil, err
		}

		if _, _, err := book.Claim(side, price, orderID, maxAmount, o.Owner); err != nil {
			return nil, err
		}

		o.publish(book, EventOrderClaimed, OrderClaimedEvent{
			Owner:   o.Owner,
			Price:   price,
			OrderID: orderID,
			Amount:  claimed,
			Fee:     fee,
		})
	}

	return &ClaimOrderResult{AmountClaimed: claimed, Fee: fee}, nil
}

// TransferOrder hands one of the operator's live orders to another owner.
func (o *Operator) TransferOrder(book *matching.Book, caller uint64, side matching.Side, price decimal.Decimal, orderID, newOwner uint64) (*TransferOrderResult, error) {
	if caller != o.Owner {
		return nil, matching.ErrUnauthorized
	}

	if err := book.Transfer(side, price, orderID, newOwner, o.Owner); err != nil {
		if matching.IsSoftError(err) {
			return &TransferOrderResult{Result: o.fail(book, err)}, nil
		}

		return nil, err
	}

	o.publish(book, EventOrderTransferred, OrderTransferredEvent{
		Owner:    o.Owner,
		Price:    price,
		OrderID:  orderID,
		NewOwner: newOwner,
	})

	return &TransferOrderResult{}, nil
}

// PricePoints lists both sides of the book for price discovery.
func (o *Operator) PricePoints(book *matching.Book, prevSellPrice decimal.Decimal, sellLimit int, prevBuyPrice decimal.Decimal, buyLimit int) ([]matching.PricePointEntry, []matching.PricePointEntry) {
	return book.PricePoints(prevSellPrice, sellLimit, prevBuyPrice, buyLimit)
}

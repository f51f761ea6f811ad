package operator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsmartex/obex/matching"
)

var errInsufficientBalance = errors.New("account.insufficient_balance")

type memVault struct {
	deposits    map[string]decimal.Decimal
	withdrawals map[string]decimal.Decimal
}

func newMemVault() *memVault {
	return &memVault{
		deposits:    make(map[string]decimal.Decimal),
		withdrawals: make(map[string]decimal.Decimal),
	}
}

func (v *memVault) Deposit(unit string, owner uint64, amount decimal.Decimal) error {
	v.deposits[unit] = v.deposits[unit].Add(amount)
	return nil
}

func (v *memVault) Withdraw(unit string, owner uint64, amount decimal.Decimal) error {
	v.withdrawals[unit] = v.withdrawals[unit].Add(amount)
	return nil
}

type failingVault struct {
	*memVault

	depositErr  error
	withdrawErr error
}

func (v *failingVault) Deposit(unit string, owner uint64, amount decimal.Decimal) error {
	if v.depositErr != nil {
		return v.depositErr
	}

	return v.memVault.Deposit(unit, owner, amount)
}

func (v *failingVault) Withdraw(unit string, owner uint64, amount decimal.Decimal) error {
	if v.withdrawErr != nil {
		return v.withdrawErr
	}

	return v.memVault.Withdraw(unit, owner, amount)
}

type recordedEvent struct {
	Market  string
	Event   string
	Payload interface{}
}

type recorder struct {
	events []recordedEvent
}

func (r *recorder) Publish(market string, event string, payload interface{}) {
	r.events = append(r.events, recordedEvent{Market: market, Event: event, Payload: payload})
}

func (r *recorder) named(event string) []recordedEvent {
	matched := make([]recordedEvent, 0)
	for _, e := range r.events {
		if e.Event == event {
			matched = append(matched, e)
		}
	}
	return matched
}

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func setup(feeRate string) (*matching.Book, *Operator, *memVault, *recorder) {
	book := matching.NewBook(
		"objusd",
		"obj",
		"usd",
		decimal.NewFromInt(1),
		decimal.NewFromInt(10),
		decimal.RequireFromString(feeRate),
	)

	vault := newMemVault()
	events := &recorder{}
	op := New(7, vault, events)

	return book, op, vault, events
}

func seedAsks(t *testing.T, book *matching.Book) {
	t.Helper()

	maker := New(8, newMemVault(), nil)
	for _, price := range []int64{1, 2, 3} {
		result, err := maker.PlaceSellOrder(book, 8, d(1), d(price), DefaultMaxPricePoints)
		require.NoError(t, err)
		require.False(t, result.Failed)
	}
}

func TestBuyAtMarket(t *testing.T) {
	book, op, vault, events := setup("0")
	seedAsks(t, book)

	result, err := op.BuyAtMarket(book, 7, d(3), DefaultMaxSellPrice, DefaultMaxPricePoints)
	require.NoError(t, err)
	require.False(t, result.Failed)

	assert.True(t, result.AmountBought.Equal(d(3)))
	assert.True(t, result.AmountPaid.Equal(d(6)), "consideration 1+2+3")
	assert.True(t, result.Fee.IsZero())

	assert.True(t, vault.deposits["usd"].Equal(d(6)), "base consideration escrowed")
	assert.True(t, vault.withdrawals["obj"].Equal(d(30)), "3 contracts of size 10 received")

	bought := events.named(EventBoughtAtMarket)
	require.Len(t, bought, 1)
	payload := bought[0].Payload.(BoughtAtMarketEvent)
	assert.True(t, payload.AmountBought.Equal(d(3)))
	assert.True(t, payload.AmountPaid.Equal(d(6)))
}

func TestBuyAtMarketMaxPrice(t *testing.T) {
	book, op, _, _ := setup("0")
	seedAsks(t, book)

	result, err := op.BuyAtMarket(book, 7, d(3), d(2), DefaultMaxPricePoints)
	require.NoError(t, err)
	require.False(t, result.Failed)

	assert.True(t, result.AmountBought.Equal(d(2)))
	assert.True(t, result.AmountPaid.Equal(d(3)))
}

func TestBuyAtMarketFee(t *testing.T) {
	book, op, vault, _ := setup("0.1")
	seedAsks(t, book)

	result, err := op.BuyAtMarket(book, 7, d(3), DefaultMaxSellPrice, DefaultMaxPricePoints)
	require.NoError(t, err)
	require.False(t, result.Failed)

	// fee on the 30 contracts received: floor(30 * 0.1) = 3
	assert.True(t, result.Fee.Equal(d(3)), "fee %s", result.Fee)
	assert.True(t, vault.withdrawals["obj"].Equal(d(27)))
}

func TestBuyAtMarketEmptyBook(t *testing.T) {
	book, op, vault, events := setup("0")

	result, err := op.BuyAtMarket(book, 7, d(3), DefaultMaxSellPrice, DefaultMaxPricePoints)
	require.NoError(t, err)
	require.False(t, result.Failed)

	assert.True(t, result.AmountBought.IsZero())
	assert.Len(t, vault.deposits, 0)
	assert.Len(t, events.events, 0, "no event when nothing was bought")
}

func TestBuyAtMarketZeroAmount(t *testing.T) {
	book, op, vault, events := setup("0")
	seedAsks(t, book)

	result, err := op.BuyAtMarket(book, 7, decimal.Zero, DefaultMaxSellPrice, DefaultMaxPricePoints)
	require.NoError(t, err, "soft failure is not a call failure")
	require.True(t, result.Failed)

	assert.Equal(t, matching.ErrInvalidAmount, result.Err)
	assert.Len(t, vault.deposits, 0, "no balances move on a soft failure")
	require.Len(t, events.named(EventFailed), 1)
}

func TestBuyAtMarketUnauthorized(t *testing.T) {
	book, op, _, _ := setup("0")
	seedAsks(t, book)

	_, err := op.BuyAtMarket(book, 9, d(3), DefaultMaxSellPrice, DefaultMaxPricePoints)
	assert.Equal(t, matching.ErrUnauthorized, err, "hard failure, no result record")
}

func TestBuyAtMarketInsufficientFunds(t *testing.T) {
	book, _, _, _ := setup("0")
	seedAsks(t, book)

	vault := &failingVault{memVault: newMemVault(), depositErr: errInsufficientBalance}
	events := &recorder{}
	op := New(7, vault, events)

	result, err := op.BuyAtMarket(book, 7, d(3), DefaultMaxSellPrice, DefaultMaxPricePoints)
	require.NoError(t, err, "funding failure is reported in the result")
	require.True(t, result.Failed)
	assert.Equal(t, errInsufficientBalance, result.Err)

	for _, price := range []int64{1, 2, 3} {
		point := book.PricePoint(matching.SideSell, d(price))
		require.NotNil(t, point)
		assert.True(t, point.TotalFilled.IsZero(), "ask at %d must be untouched", price)
	}

	assert.Len(t, vault.withdrawals, 0)
	require.Len(t, events.named(EventFailed), 1)
}

func TestSellAtMarket(t *testing.T) {
	book, op, vault, events := setup("0.1")

	maker := New(8, newMemVault(), nil)
	for _, price := range []int64{4, 5} {
		result, err := maker.PlaceBuyOrder(book, 8, d(1), d(price), DefaultMaxPricePoints)
		require.NoError(t, err)
		require.False(t, result.Failed)
	}

	result, err := op.SellAtMarket(book, 7, d(2), decimal.Zero, DefaultMaxPricePoints)
	require.NoError(t, err)
	require.False(t, result.Failed)

	assert.True(t, result.AmountSold.Equal(d(2)))
	assert.True(t, result.AmountReceived.Equal(d(9)), "5 then 4, best bid first")
	assert.True(t, result.Fee.IsZero(), "floor(9 * 0.1) = 0")

	assert.True(t, vault.deposits["obj"].Equal(d(20)), "2 contracts delivered")
	assert.True(t, vault.withdrawals["usd"].Equal(d(9)))

	require.Len(t, events.named(EventSoldAtMarket), 1)
}

func TestPlaceBuyOrderRestsResidual(t *testing.T) {
	book, op, vault, events := setup("0")
	seedAsks(t, book)

	result, err := op.PlaceBuyOrder(book, 7, d(3), d(2), DefaultMaxPricePoints)
	require.NoError(t, err)
	require.False(t, result.Failed)

	assert.True(t, result.AmountBought.Equal(d(2)), "asks at 1 and 2 are marketable")
	assert.True(t, result.AmountPaid.Equal(d(3)))
	assert.True(t, result.AmountPlaced.Equal(d(1)))
	assert.Equal(t, uint64(1), result.OrderID)

	order, err := book.Order(matching.SideBuy, d(2), result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), order.Owner)
	assert.True(t, order.Amount.Equal(d(1)))

	// consideration 3 plus escrow 2*1 for the resting order
	assert.True(t, vault.deposits["usd"].Equal(d(5)))

	require.Len(t, events.named(EventBoughtAtMarket), 1)
	require.Len(t, events.named(EventPlacedBuyOrder), 1)
}

func TestPlaceBuyOrderInsufficientFunds(t *testing.T) {
	book, _, _, _ := setup("0")
	seedAsks(t, book)

	vault := &failingVault{memVault: newMemVault(), depositErr: errInsufficientBalance}
	op := New(7, vault, nil)

	result, err := op.PlaceBuyOrder(book, 7, d(3), d(2), DefaultMaxPricePoints)
	require.NoError(t, err)
	require.True(t, result.Failed)
	assert.Equal(t, errInsufficientBalance, result.Err)

	point := book.PricePoint(matching.SideSell, d(1))
	require.NotNil(t, point)
	assert.True(t, point.TotalFilled.IsZero(), "marketable asks must be untouched")

	assert.Nil(t, book.PricePoint(matching.SideBuy, d(2)), "no residual order rested")
}

func TestPlaceBuyOrderInvalidPrice(t *testing.T) {
	book, op, _, events := setup("0")

	result, err := op.PlaceBuyOrder(book, 7, d(3), decimal.Zero, DefaultMaxPricePoints)
	require.NoError(t, err)
	require.True(t, result.Failed)

	assert.Equal(t, matching.ErrInvalidPrice, result.Err)
	require.Len(t, events.named(EventFailed), 1)
}

func TestPlaceSellOrderRestsResidual(t *testing.T) {
	book, op, vault, events := setup("0")

	result, err := op.PlaceSellOrder(book, 7, d(2), d(3), DefaultMaxPricePoints)
	require.NoError(t, err)
	require.False(t, result.Failed)

	assert.True(t, result.AmountSold.IsZero(), "no bids to sell into")
	assert.True(t, result.AmountPlaced.Equal(d(2)))
	assert.Equal(t, uint64(1), result.OrderID)

	assert.True(t, vault.deposits["obj"].Equal(d(20)), "contracts escrowed")

	require.Len(t, events.named(EventPlacedSellOrder), 1)
}

func TestCancelOrderRefundsEscrow(t *testing.T) {
	book, op, vault, events := setup("0")

	result, err := op.PlaceSellOrder(book, 7, d(2), d(3), DefaultMaxPricePoints)
	require.NoError(t, err)

	canceled, err := op.CancelOrder(book, 7, matching.SideSell, d(3), result.OrderID, DefaultMaxLastOrderID)
	require.NoError(t, err)
	require.False(t, canceled.Failed)

	assert.True(t, canceled.AmountCanceled.Equal(d(2)))
	assert.True(t, vault.withdrawals["obj"].Equal(d(20)), "escrowed contracts refunded")

	require.Len(t, events.named(EventOrderCanceled), 1)
}

func TestCancelOrderFrontRunGuard(t *testing.T) {
	book, op, _, _ := setup("0")

	result, err := op.PlaceSellOrder(book, 7, d(2), d(3), DefaultMaxPricePoints)
	require.NoError(t, err)

	maker := New(8, newMemVault(), nil)
	_, err = maker.PlaceSellOrder(book, 8, d(1), d(3), DefaultMaxPricePoints)
	require.NoError(t, err)

	canceled, err := op.CancelOrder(book, 7, matching.SideSell, d(3), result.OrderID, 1)
	require.NoError(t, err)
	require.True(t, canceled.Failed)
	assert.Equal(t, matching.ErrOverMaxLastOrderID, canceled.Err)
}

func TestClaimOrderPaysOutProceeds(t *testing.T) {
	book, op, vault, events := setup("0.1")

	placed, err := op.PlaceSellOrder(book, 7, d(2), d(10), DefaultMaxPricePoints)
	require.NoError(t, err)

	taker := New(9, newMemVault(), nil)
	bought, err := taker.BuyAtMarket(book, 9, d(2), DefaultMaxSellPrice, DefaultMaxPricePoints)
	require.NoError(t, err)
	require.True(t, bought.AmountBought.Equal(d(2)))

	claimed, err := op.ClaimOrder(book, 7, matching.SideSell, d(10), placed.OrderID, d(2))
	require.NoError(t, err)
	require.False(t, claimed.Failed)

	assert.True(t, claimed.AmountClaimed.Equal(d(2)))
	assert.True(t, claimed.Fee.Equal(d(2)), "floor(20 * 0.1)")
	assert.True(t, vault.withdrawals["usd"].Equal(d(18)), "consideration 20 minus fee 2")

	require.Len(t, events.named(EventOrderClaimed), 1)
}

func TestClaimOrderSettlementFailureKeepsClaim(t *testing.T) {
	book, op, _, _ := setup("0")

	placed, err := op.PlaceSellOrder(book, 7, d(2), d(10), DefaultMaxPricePoints)
	require.NoError(t, err)

	taker := New(9, newMemVault(), nil)
	_, err = taker.BuyAtMarket(book, 9, d(2), DefaultMaxSellPrice, DefaultMaxPricePoints)
	require.NoError(t, err)

	errSettlement := errors.New("account.unavailable")
	broken := New(7, &failingVault{memVault: newMemVault(), withdrawErr: errSettlement}, nil)

	_, err = broken.ClaimOrder(book, 7, matching.SideSell, d(10), placed.OrderID, d(2))
	assert.Equal(t, errSettlement, err)

	order, err := book.Order(matching.SideSell, d(10), placed.OrderID)
	require.NoError(t, err)
	assert.True(t, order.Claimed.IsZero(), "claim must not be recorded when the payout fails")

	// the proceeds stay claimable and a retry settles them
	claimed, err := op.ClaimOrder(book, 7, matching.SideSell, d(10), placed.OrderID, d(2))
	require.NoError(t, err)
	require.False(t, claimed.Failed)
	assert.True(t, claimed.AmountClaimed.Equal(d(2)))
}

func TestClaimOrderZeroIsNoOp(t *testing.T) {
	book, op, vault, events := setup("0")

	placed, err := op.PlaceSellOrder(book, 7, d(2), d(10), DefaultMaxPricePoints)
	require.NoError(t, err)

	claimed, err := op.ClaimOrder(book, 7, matching.SideSell, d(10), placed.OrderID, d(2))
	require.NoError(t, err)
	require.False(t, claimed.Failed)

	assert.True(t, claimed.AmountClaimed.IsZero())
	assert.Len(t, vault.withdrawals, 0)
	assert.Len(t, events.named(EventOrderClaimed), 0)
}

func TestTransferOrder(t *testing.T) {
	book, op, _, events := setup("0")

	placed, err := op.PlaceSellOrder(book, 7, d(2), d(10), DefaultMaxPricePoints)
	require.NoError(t, err)

	result, err := op.TransferOrder(book, 7, matching.SideSell, d(10), placed.OrderID, 9)
	require.NoError(t, err)
	require.False(t, result.Failed)

	order, err := book.Order(matching.SideSell, d(10), placed.OrderID)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), order.Owner)

	require.Len(t, events.named(EventOrderTransferred), 1)

	// the transferring operator no longer owns the order
	_, err = op.TransferOrder(book, 7, matching.SideSell, d(10), placed.OrderID, 7)
	assert.Equal(t, matching.ErrUnauthorized, err)
}

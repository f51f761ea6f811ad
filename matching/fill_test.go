package matching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBook() *Book {
	return NewBook(
		"objusd",
		"obj",
		"usd",
		decimal.NewFromInt(1),
		decimal.NewFromInt(10),
		decimal.Zero,
	)
}

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// Most permissive bounds: walk sells up to any price, buys down to zero.
var (
	unboundedSell = decimal.New(1, 30)
	unboundedBuy  = decimal.Zero
)

func placeSells(t *testing.T, b *Book, owner uint64) {
	t.Helper()

	for _, price := range []int64{1, 2, 3} {
		_, err := b.Place(SideSell, d(price), d(1), owner)
		require.NoError(t, err)
	}
}

func TestFill_WalksBestPriceFirst(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	matched, consideration, visited, err := b.Fill(SideSell, unboundedSell, d(3), 255)
	require.NoError(t, err)

	assert.True(t, matched.Equal(d(3)), "matched %s", matched)
	assert.True(t, consideration.Equal(d(6)), "consideration %s", consideration)
	assert.Equal(t, 3, visited)
}

func TestFill_StopsAtPriceBound(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	matched, consideration, visited, err := b.Fill(SideSell, d(2), d(3), 255)
	require.NoError(t, err)

	assert.True(t, matched.Equal(d(2)))
	assert.True(t, consideration.Equal(d(3)))
	assert.Equal(t, 2, visited)

	// the price 3 point is untouched
	point := b.PricePoint(SideSell, d(3))
	require.NotNil(t, point)
	assert.True(t, point.TotalFilled.IsZero())
}

func TestFill_StopsAtMaxPricePoints(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	matched, consideration, visited, err := b.Fill(SideSell, unboundedSell, d(3), 1)
	require.NoError(t, err)

	assert.True(t, matched.Equal(d(1)))
	assert.True(t, consideration.Equal(d(1)))
	assert.Equal(t, 1, visited)
}

func TestFill_BuySideWalksHighestBidFirst(t *testing.T) {
	b := newTestBook()

	for _, price := range []int64{1, 2, 3} {
		_, err := b.Place(SideBuy, d(price), d(1), 7)
		require.NoError(t, err)
	}

	matched, consideration, visited, err := b.Fill(SideBuy, d(2), d(3), 255)
	require.NoError(t, err)

	assert.True(t, matched.Equal(d(2)))
	assert.True(t, consideration.Equal(d(5)), "consideration %s", consideration)
	assert.Equal(t, 2, visited)
}

func TestFill_SkipsExhaustedPricePoints(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	_, _, _, err := b.Fill(SideSell, d(1), d(1), 255)
	require.NoError(t, err)

	// price 1 is exhausted but still present; it must not count against
	// maxPricePoints
	matched, consideration, visited, err := b.Fill(SideSell, unboundedSell, d(2), 2)
	require.NoError(t, err)

	assert.True(t, matched.Equal(d(2)))
	assert.True(t, consideration.Equal(d(5)))
	assert.Equal(t, 2, visited)
	assert.NotNil(t, b.PricePoint(SideSell, d(1)))
}

func TestQuoteFill_LeavesBookUntouched(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	matched, consideration, visited, err := b.QuoteFill(SideSell, unboundedSell, d(3), 255)
	require.NoError(t, err)

	assert.True(t, matched.Equal(d(3)))
	assert.True(t, consideration.Equal(d(6)))
	assert.Equal(t, 3, visited)

	for _, price := range []int64{1, 2, 3} {
		point := b.PricePoint(SideSell, d(price))
		require.NotNil(t, point)
		assert.True(t, point.TotalFilled.IsZero(), "price %d consumed by a quote", price)
	}

	// applying the same fill produces exactly the quoted numbers
	matched, consideration, _, err = b.Fill(SideSell, unboundedSell, d(3), 255)
	require.NoError(t, err)
	assert.True(t, matched.Equal(d(3)))
	assert.True(t, consideration.Equal(d(6)))
}

func TestFill_ZeroAmountRejected(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	_, _, _, err := b.Fill(SideSell, unboundedSell, decimal.Zero, 255)
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestFill_ZeroPricePointLimitRejected(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	_, _, _, err := b.Fill(SideSell, unboundedSell, d(1), 0)
	assert.Equal(t, ErrInvalidArgument, err)
}

func TestFill_EmptyBook(t *testing.T) {
	b := newTestBook()

	matched, consideration, visited, err := b.Fill(SideSell, unboundedSell, d(3), 255)
	require.NoError(t, err)

	assert.True(t, matched.IsZero())
	assert.True(t, consideration.IsZero())
	assert.Equal(t, 0, visited)
}

func TestFill_FIFOWithinPricePoint(t *testing.T) {
	b := newTestBook()

	idA, err := b.Place(SideSell, d(1), d(2), 7)
	require.NoError(t, err)
	idB, err := b.Place(SideSell, d(1), d(2), 8)
	require.NoError(t, err)

	matched, _, _, err := b.Fill(SideSell, unboundedSell, d(3), 255)
	require.NoError(t, err)
	require.True(t, matched.Equal(d(3)))

	point := b.PricePoint(SideSell, d(1))
	require.NotNil(t, point)

	orderA := point.Order(idA)
	orderB := point.Order(idB)

	assert.True(t, orderA.Filled(point.TotalFilled).Equal(d(2)), "order A fully filled")
	assert.True(t, orderB.Filled(point.TotalFilled).Equal(d(1)), "order B filled by 1")
}

func TestFill_Conservation(t *testing.T) {
	b := newTestBook()

	ids := make([]uint64, 0, 4)
	for _, amount := range []int64{2, 3, 1, 5} {
		id, err := b.Place(SideSell, d(1), d(amount), 7)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	for i := 0; i < 3; i++ {
		_, _, _, err := b.Fill(SideSell, unboundedSell, d(3), 255)
		require.NoError(t, err)

		point := b.PricePoint(SideSell, d(1))
		require.NotNil(t, point)
		assert.True(t, point.TotalFilled.LessThanOrEqual(point.TotalPlaced))

		sum := decimal.Zero
		for _, id := range ids {
			sum = sum.Add(point.Order(id).Filled(point.TotalFilled))
		}
		assert.True(t, sum.Equal(point.TotalFilled), "orders filled %s, point filled %s", sum, point.TotalFilled)
	}
}

package matching

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricePoints_BestToWorst(t *testing.T) {
	b := newTestBook()

	for _, price := range []int64{3, 1, 2} {
		_, err := b.Place(SideSell, d(price), d(1), 7)
		require.NoError(t, err)
	}
	for _, price := range []int64{4, 6, 5} {
		_, err := b.Place(SideBuy, d(price), d(2), 7)
		require.NoError(t, err)
	}

	sells, buys := b.PricePoints(decimal.Zero, 10, decimal.Zero, 10)

	require.Len(t, sells, 3)
	require.Len(t, buys, 3)

	for i, price := range []int64{1, 2, 3} {
		assert.True(t, sells[i].Price.Equal(d(price)))
		assert.True(t, sells[i].Available.Equal(d(1)))
	}
	for i, price := range []int64{6, 5, 4} {
		assert.True(t, buys[i].Price.Equal(d(price)))
		assert.True(t, buys[i].Available.Equal(d(2)))
	}
}

func TestPricePoints_TerminatesEarly(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	sells, buys := b.PricePoints(decimal.Zero, 5, decimal.Zero, 5)

	assert.Len(t, sells, 3, "returns the 3 existing points, not 5 padded entries")
	assert.Len(t, buys, 0)
}

func TestPricePoints_ResumesAfterPrev(t *testing.T) {
	b := newTestBook()

	for _, price := range []int64{1, 2, 3, 4} {
		_, err := b.Place(SideSell, d(price), d(1), 7)
		require.NoError(t, err)
		_, err = b.Place(SideBuy, d(price+10), d(1), 7)
		require.NoError(t, err)
	}

	sells, buys := b.PricePoints(d(2), 2, d(13), 2)

	require.Len(t, sells, 2)
	assert.True(t, sells[0].Price.Equal(d(3)))
	assert.True(t, sells[1].Price.Equal(d(4)))

	require.Len(t, buys, 2)
	assert.True(t, buys[0].Price.Equal(d(12)))
	assert.True(t, buys[1].Price.Equal(d(11)))
}

func TestPricePoints_OmitsExhaustedPoints(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	_, _, _, err := b.Fill(SideSell, d(1), d(1), 255)
	require.NoError(t, err)

	sells, _ := b.PricePoints(decimal.Zero, 5, decimal.Zero, 5)

	require.Len(t, sells, 2)
	assert.True(t, sells[0].Price.Equal(d(2)))
	assert.True(t, sells[1].Price.Equal(d(3)))
}

func TestPricePoints_ReadOnly(t *testing.T) {
	b := newTestBook()
	placeSells(t, b, 7)

	before := b.PricePoint(SideSell, d(1)).TotalPlaced

	b.PricePoints(decimal.Zero, 5, decimal.Zero, 5)

	assert.True(t, b.PricePoint(SideSell, d(1)).TotalPlaced.Equal(before))
}

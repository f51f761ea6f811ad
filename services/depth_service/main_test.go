package depth_service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zsmartex/obex/types"
)

func TestUpdateTracksAvailability(t *testing.T) {
	d := NewDepthService("objusd")

	d.Update(types.TypeSell, decimal.NewFromInt(2), decimal.NewFromInt(5))
	d.Update(types.TypeBuy, decimal.NewFromInt(1), decimal.NewFromInt(3))

	assert.True(t, d.Asks["2"].Equal(decimal.NewFromInt(5)))
	assert.True(t, d.Bids["1"].Equal(decimal.NewFromInt(3)))
	assert.Equal(t, uint64(2), d.Sequence)

	d.Update(types.TypeSell, decimal.NewFromInt(2), decimal.Zero)

	_, found := d.Asks["2"]
	assert.False(t, found, "exhausted level dropped from the cache")
	assert.Equal(t, uint64(3), d.Sequence)
}

func TestToJSON(t *testing.T) {
	d := NewDepthService("objusd")

	d.Update(types.TypeSell, decimal.NewFromInt(7), decimal.NewFromInt(2))

	depth := d.ToJSON()

	assert.Len(t, depth.Asks, 1)
	assert.True(t, depth.Asks[0][0].Equal(decimal.NewFromInt(7)))
	assert.True(t, depth.Asks[0][1].Equal(decimal.NewFromInt(2)))
	assert.Empty(t, depth.Bids)
	assert.Equal(t, uint64(1), depth.Sequence)
}

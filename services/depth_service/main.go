package depth_service

import (
	"github.com/shopspring/decimal"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/types"
)

// DepthService is the cached view of one market's book: available liquidity
// per price, keyed by the price's string form.
type DepthService struct {
	Market   string
	Asks     map[string]decimal.Decimal
	Bids     map[string]decimal.Decimal
	Sequence uint64
}

func NewDepthService(market string) *DepthService {
	return &DepthService{
		Market:   market,
		Asks:     make(map[string]decimal.Decimal),
		Bids:     make(map[string]decimal.Decimal),
		Sequence: 0,
	}
}

func Fetch(market string) *DepthService {
	depthService := NewDepthService(market)

	var sequence uint64
	var asks [][]decimal.Decimal
	var bids [][]decimal.Decimal

	config.Redis.GetKey("obex:"+market+":depth:sequence", &sequence)
	config.Redis.GetKey("obex:"+market+":depth:asks", &asks)
	config.Redis.GetKey("obex:"+market+":depth:bids", &bids)

	for _, ord := range asks {
		depthService.Asks[ord[0].String()] = ord[1]
	}
	for _, ord := range bids {
		depthService.Bids[ord[0].String()] = ord[1]
	}

	depthService.Sequence = sequence

	return depthService
}

func (d *DepthService) Update(side string, price, available decimal.Decimal) {
	levels := d.Asks
	if side == types.TypeBuy {
		levels = d.Bids
	}

	if available.IsPositive() {
		levels[price.String()] = available
	} else {
		delete(levels, price.String())
	}

	d.Sequence++
}

func (d *DepthService) ToJSON() types.Depth {
	var ask_depth [][]decimal.Decimal
	var bid_depth [][]decimal.Decimal

	for price, amount := range d.Asks {
		ask_depth = append(ask_depth, []decimal.Decimal{decimal.RequireFromString(price), amount})
	}
	for price, amount := range d.Bids {
		bid_depth = append(bid_depth, []decimal.Decimal{decimal.RequireFromString(price), amount})
	}

	return types.Depth{
		Asks:     ask_depth,
		Bids:     bid_depth,
		Sequence: d.Sequence,
	}
}

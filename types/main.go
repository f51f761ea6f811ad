package types

import (
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/zsmartex/obex/matching"
)

type Depth struct {
	Asks     [][]decimal.Decimal `json:"asks"`
	Bids     [][]decimal.Decimal `json:"bids"`
	Sequence uint64              `json:"sequence"`
}

type PayloadAction = string

var (
	ActionBuyAtMarket   PayloadAction = "buy_at_market"
	ActionSellAtMarket  PayloadAction = "sell_at_market"
	ActionPlaceBuy      PayloadAction = "place_buy_order"
	ActionPlaceSell     PayloadAction = "place_sell_order"
	ActionCancelOrder   PayloadAction = "cancel_order"
	ActionClaimOrder    PayloadAction = "claim_order"
	ActionTransferOrder PayloadAction = "transfer_order"
	ActionNew           PayloadAction = "new"
	ActionReload        PayloadAction = "reload"
)

// BookPayloadMessage is the wire format of one book operation. Bounds the
// caller leaves unset fall back to the most permissive value.
type BookPayloadMessage struct {
	Action  PayloadAction   `json:"action"`
	Market  string          `json:"market"`
	Owner   uint64          `json:"owner"`
	Side    matching.Side   `json:"side,omitempty"`
	Price   decimal.Decimal `json:"price"`
	Amount  decimal.Decimal `json:"amount"`
	OrderID uint64          `json:"order_id,omitempty"`

	NewOwner       null.Uint64         `json:"new_owner,omitempty"`
	PriceBound     decimal.NullDecimal `json:"price_bound,omitempty"`
	MaxPricePoints null.Int            `json:"max_price_points,omitempty"`
	MaxLastOrderID null.Uint64         `json:"max_last_order_id,omitempty"`
}

type GlobalPrice = map[string]map[string]float64

type TakerType = string

var (
	TypeBuy  TakerType = "buy"
	TypeSell TakerType = "sell"
)

type OrderType = string

var (
	TypeLimit  OrderType = "limit"
	TypeMarket OrderType = "market"
)

type OrderBy = string

var (
	OrderByAsc  OrderBy = "asc"
	OrderByDesc OrderBy = "desc"
)

type MarketState = string

var (
	MarketStateEndabled MarketState = "enabled"
	MarketStateDisabled MarketState = "disabled"
)

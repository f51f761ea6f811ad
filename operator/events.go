package operator

import (
	"github.com/shopspring/decimal"
)

const (
	EventBoughtAtMarket   = "bought_at_market"
	EventSoldAtMarket     = "sold_at_market"
	EventPlacedBuyOrder   = "placed_buy_order"
	EventPlacedSellOrder  = "placed_sell_order"
	EventOrderCanceled    = "order_canceled"
	EventOrderClaimed     = "order_claimed"
	EventOrderTransferred = "order_transferred"
	EventFailed           = "failed"
)

// Notifier fans operation outcomes out to observers so book history can be
// reconstructed without re-deriving it from raw state diffs.
type Notifier interface {
	Publish(market string, event string, payload interface{})
}

type BoughtAtMarketEvent struct {
	Owner        uint64          `json:"owner"`
	AmountBought decimal.Decimal `json:"amount_bought"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Fee          decimal.Decimal `json:"fee"`
}

type SoldAtMarketEvent struct {
	Owner          uint64          `json:"owner"`
	AmountSold     decimal.Decimal `json:"amount_sold"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Fee            decimal.Decimal `json:"fee"`
}

type PlacedBuyOrderEvent struct {
	Owner   uint64          `json:"owner"`
	Price   decimal.Decimal `json:"price"`
	Amount  decimal.Decimal `json:"amount"`
	OrderID uint64          `json:"order_id"`
}

type PlacedSellOrderEvent struct {
	Owner   uint64          `json:"owner"`
	Price   decimal.Decimal `json:"price"`
	Amount  decimal.Decimal `json:"amount"`
	OrderID uint64          `json:"order_id"`
}

type OrderCanceledEvent struct {
	Owner   uint64          `json:"owner"`
	Price   decimal.Decimal `json:"price"`
	OrderID uint64          `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
}

type OrderClaimedEvent struct {
	Owner   uint64          `json:"owner"`
	Price   decimal.Decimal `json:"price"`
	OrderID uint64          `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Fee     decimal.Decimal `json:"fee"`
}

type OrderTransferredEvent struct {
	Owner    uint64          `json:"owner"`
	Price    decimal.Decimal `json:"price"`
	OrderID  uint64          `json:"order_id"`
	NewOwner uint64          `json:"new_owner"`
}

type FailedEvent struct {
	Owner uint64 `json:"owner"`
	Error string `json:"error"`
}

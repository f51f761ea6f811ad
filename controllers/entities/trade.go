package entities

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/obex/types"
)

type TradeEntity struct {
	ID        uint64          `json:"id"`
	Market    string          `json:"market"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Total     decimal.Decimal `json:"total"`
	Fee       decimal.Decimal `json:"fee"`
	TakerType types.TakerType `json:"taker_type"`
	CreatedAt time.Time       `json:"created_at"`
}

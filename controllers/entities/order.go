package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/obex/matching"
)

type OrderEntity struct {
	UUID      uuid.UUID       `json:"uuid"`
	Market    string          `json:"market"`
	Side      matching.Side   `json:"side"`
	Price     decimal.Decimal `json:"price"`
	OrderID   uint64          `json:"order_id"`
	Amount    decimal.Decimal `json:"amount"`
	Claimed   decimal.Decimal `json:"claimed"`
	State     string          `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

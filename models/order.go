package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/gookit/validate"
	"github.com/shopspring/decimal"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/controllers/entities"
	"github.com/zsmartex/obex/matching"
	"github.com/zsmartex/obex/models/concerns"
)

var precision_validator = &concerns.PrecisionValidator{}

type OrderState int32

const (
	StateWait   OrderState = 100
	StateDone   OrderState = 200
	StateCancel OrderState = -100
)

// Order is the durable record of a resting order. The book itself lives in
// memory; these rows exist so an engine restart can replay every waiting
// order back into its price point in placement order.
type Order struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	UUID      uuid.UUID       `json:"uuid" gorm:"default:gen_random_uuid()"`
	MarketID  string          `json:"market_id" validate:"required"`
	Side      matching.Side   `json:"side" validate:"SideVaildator"`
	Price     decimal.Decimal `json:"price" validate:"PriceVaildator"`
	OrderID   uint64          `json:"order_id"`
	Owner     uint64          `json:"owner" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"AmountVaildator"`
	Claimed   decimal.Decimal `json:"claimed" gorm:"default:0.0"`
	State     OrderState      `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (o Order) Message() map[string]string {
	invalid_message := "market.order.invalid_{field}"

	return validate.MS{
		"required": invalid_message,
	}
}

func (o Order) SideVaildator(Side matching.Side) bool {
	return Side.Valid()
}

func (o Order) PriceVaildator(Price decimal.Decimal) bool {
	if !Price.IsPositive() {
		return false
	}

	return precision_validator.WholeUnits(Price)
}

func (o Order) AmountVaildator(Amount decimal.Decimal) bool {
	if !Amount.IsPositive() {
		return false
	}

	return precision_validator.WholeUnits(Amount)
}

func (o Order) StateString() string {
	switch o.State {
	case StateWait:
		return "wait"
	case StateDone:
		return "done"
	case StateCancel:
		return "cancel"
	}

	return "unknown"
}

func (o *Order) ToJSON() entities.OrderEntity {
	return entities.OrderEntity{
		UUID:      o.UUID,
		Market:    o.MarketID,
		Side:      o.Side,
		Price:     o.Price,
		OrderID:   o.OrderID,
		Amount:    o.Amount,
		Claimed:   o.Claimed,
		State:     o.StateString(),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (o *Order) Market() *Market {
	market := &Market{}

	config.DataBase.First(&market, "symbol = ?", o.MarketID)

	return market
}

func GetWaitingOrders(market string) []Order {
	var orders []Order

	config.DataBase.Where("market_id = ? AND state = ?", market, StateWait).Order("id asc").Find(&orders)

	return orders
}

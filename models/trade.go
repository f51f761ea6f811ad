package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/controllers/entities"
	"github.com/zsmartex/obex/mq_client"
	"github.com/zsmartex/obex/types"
)

// Trade is one executed fill against a single price point: the taker walked
// the book and consumed amount contracts of the maker side at price.
type Trade struct {
	ID         uint64          `json:"id" gorm:"primaryKey"`
	MarketID   string          `json:"market_id"`
	Price      decimal.Decimal `json:"price" validate:"ValidatePrice"`
	Amount     decimal.Decimal `json:"amount" validate:"ValidateAmount"`
	Total      decimal.Decimal `json:"total" validate:"ValidateTotal"`
	TakerOwner uint64          `json:"taker_owner"`
	TakerType  types.TakerType `json:"taker_type"`
	Fee        decimal.Decimal `json:"fee" gorm:"default:0.0"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (t Trade) ValidatePrice(Price decimal.Decimal) bool {
	return Price.IsPositive()
}

func (t Trade) ValidateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

func (t Trade) ValidateTotal(Total decimal.Decimal) bool {
	return Total.IsPositive()
}

func (t *Trade) Market() *Market {
	market := &Market{}

	config.DataBase.First(&market, "symbol = ?", t.MarketID)

	return market
}

func (t *Trade) TriggerEvent() {
	payload_message, _ := json.Marshal(t.TradeGlobalJSON())

	mq_client.EnqueueEvent("public", t.MarketID, "trades", payload_message)
}

func (t *Trade) WriteToInflux() {
	price, _ := t.Price.Float64()
	amount, _ := t.Amount.Float64()
	total, _ := t.Total.Float64()

	tags := map[string]string{"market": t.MarketID}
	fields := map[string]interface{}{
		"id":         int32(t.ID),
		"price":      price,
		"amount":     amount,
		"total":      total,
		"taker_type": t.TakerType,
		"created_at": t.CreatedAt,
	}

	config.InfluxDB.NewPoint("trades", tags, fields)
}

func (t *Trade) ToJSON() entities.TradeEntity {
	return entities.TradeEntity{
		ID:        t.ID,
		Market:    t.MarketID,
		Price:     t.Price,
		Amount:    t.Amount,
		Total:     t.Total,
		Fee:       t.Fee,
		TakerType: t.TakerType,
		CreatedAt: t.CreatedAt,
	}
}

type TradeGlobalJSON struct {
	ID        uint64          `json:"id"`
	Market    string          `json:"market"`
	Price     decimal.Decimal `json:"price"`
	Amount    decimal.Decimal `json:"amount"`
	Total     decimal.Decimal `json:"total"`
	TakerType types.TakerType `json:"taker_type"`
	CreatedAt time.Time       `json:"created_at"`
}

func (t *Trade) TradeGlobalJSON() TradeGlobalJSON {
	return TradeGlobalJSON{
		ID:        t.ID,
		Market:    t.MarketID,
		Price:     t.Price,
		Amount:    t.Amount,
		Total:     t.Total,
		TakerType: t.TakerType,
		CreatedAt: t.CreatedAt,
	}
}

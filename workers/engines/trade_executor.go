package engines

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/models"
	"github.com/zsmartex/obex/mq_client"
	engine "github.com/zsmartex/obex/server"
)

type TradeExecutorWorker struct {
}

func NewTradeExecutorWorker() *TradeExecutorWorker {
	return &TradeExecutorWorker{}
}

func (w *TradeExecutorWorker) Process(payload []byte) error {
	var trade_payload engine.TradePayload

	if err := json.Unmarshal(payload, &trade_payload); err != nil {
		return err
	}

	trade, err := w.CreateTrade(&trade_payload)
	if err != nil {
		// parked for manual replay once the database recovers
		mq_client.Enqueue("trade_error", payload)
		return err
	}

	w.PublishTrade(trade)
	return nil
}

func (w *TradeExecutorWorker) CreateTrade(payload *engine.TradePayload) (*models.Trade, error) {
	trade := &models.Trade{
		MarketID:   payload.Market,
		Price:      payload.Total.DivRound(payload.Amount, 8),
		Amount:     payload.Amount,
		Total:      payload.Total,
		Fee:        payload.Fee,
		TakerOwner: payload.TakerOwner,
		TakerType:  payload.TakerType,
	}

	err := config.DataBase.Transaction(func(tx *gorm.DB) error {
		return tx.Create(trade).Error
	})

	if err != nil {
		return nil, err
	}

	return trade, nil
}

func (w *TradeExecutorWorker) PublishTrade(trade *models.Trade) {
	trade.TriggerEvent()
	trade.WriteToInflux()
}

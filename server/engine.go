package engine

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/matching"
	"github.com/zsmartex/obex/models"
	"github.com/zsmartex/obex/mq_client"
	"github.com/zsmartex/obex/operator"
	"github.com/zsmartex/obex/types"
)

// EventNotifier fans operation events out over AMQP so downstream consumers
// can follow book history.
type EventNotifier struct {
}

func (n EventNotifier) Publish(market string, event string, payload interface{}) {
	payload_message, _ := json.Marshal(payload)

	mq_client.EnqueueEvent("public", market, event, payload_message)
}

type DepthChangePayload struct {
	Market    string          `json:"market"`
	Side      matching.Side   `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Available decimal.Decimal `json:"available"`
}

type TradePayload struct {
	Market     string          `json:"market"`
	Amount     decimal.Decimal `json:"amount"`
	Total      decimal.Decimal `json:"total"`
	Fee        decimal.Decimal `json:"fee"`
	TakerOwner uint64          `json:"taker_owner"`
	TakerType  types.TakerType `json:"taker_type"`
}

type EngineServer struct {
	Books map[string]*matching.Book

	vault    operator.Vault
	notifier operator.Notifier
}

func NewEngineServer() *EngineServer {
	worker := &EngineServer{
		Books:    make(map[string]*matching.Book),
		vault:    models.Vault{},
		notifier: EventNotifier{},
	}

	worker.Reload("all")

	return worker
}

func (w *EngineServer) Process(payload []byte) error {
	var book_payload types.BookPayloadMessage
	if err := json.Unmarshal(payload, &book_payload); err != nil {
		return err
	}

	switch book_payload.Action {
	case types.ActionNew:
		w.InitializeBook(book_payload.Market)
		return nil
	case types.ActionReload:
		w.Reload(book_payload.Market)
		return nil
	}

	book := w.GetBookByMarket(book_payload.Market)
	if book == nil {
		return errors.New("book not found")
	}

	op := operator.New(book_payload.Owner, w.vault, w.notifier)

	switch book_payload.Action {
	case types.ActionBuyAtMarket:
		return w.buyAtMarket(book, op, book_payload)
	case types.ActionSellAtMarket:
		return w.sellAtMarket(book, op, book_payload)
	case types.ActionPlaceBuy:
		return w.placeBuyOrder(book, op, book_payload)
	case types.ActionPlaceSell:
		return w.placeSellOrder(book, op, book_payload)
	case types.ActionCancelOrder:
		return w.cancelOrder(book, op, book_payload)
	case types.ActionClaimOrder:
		return w.claimOrder(book, op, book_payload)
	case types.ActionTransferOrder:
		return w.transferOrder(book, op, book_payload)
	default:
		config.Logger.Fatalf("Unknown action: %s", book_payload.Action)
	}

	return nil
}

func (w *EngineServer) maxPricePoints(p types.BookPayloadMessage) int {
	if p.MaxPricePoints.Valid {
		return p.MaxPricePoints.Int
	}

	return operator.DefaultMaxPricePoints
}

func (w *EngineServer) maxLastOrderID(p types.BookPayloadMessage) uint64 {
	if p.MaxLastOrderID.Valid {
		return p.MaxLastOrderID.Uint64
	}

	return operator.DefaultMaxLastOrderID
}

func (w *EngineServer) priceBound(p types.BookPayloadMessage, side matching.Side) decimal.Decimal {
	if p.PriceBound.Valid {
		return p.PriceBound.Decimal
	}

	if side == matching.SideSell {
		return operator.DefaultMaxSellPrice
	}

	return decimal.Zero
}

func (w *EngineServer) publishTrade(book *matching.Book, amount, total, fee decimal.Decimal, takerOwner uint64, takerType types.TakerType) {
	payload_message, _ := json.Marshal(TradePayload{
		Market:     book.Symbol,
		Amount:     amount,
		Total:      total,
		Fee:        fee,
		TakerOwner: takerOwner,
		TakerType:  takerType,
	})

	if err := config.Nats.Publish("trade_executor", payload_message); err != nil {
		config.Logger.Errorf("Failed to publish trade: %v", err.Error())
	}
}

func (w *EngineServer) buyAtMarket(book *matching.Book, op *operator.Operator, p types.BookPayloadMessage) error {
	result, err := op.BuyAtMarket(book, p.Owner, p.Amount, w.priceBound(p, matching.SideSell), w.maxPricePoints(p))
	if err != nil {
		return err
	}

	if !result.Failed && result.AmountBought.IsPositive() {
		w.publishTrade(book, result.AmountBought, result.AmountPaid, result.Fee, p.Owner, types.TypeBuy)
	}

	return nil
}

func (w *EngineServer) sellAtMarket(book *matching.Book, op *operator.Operator, p types.BookPayloadMessage) error {
	result, err := op.SellAtMarket(book, p.Owner, p.Amount, w.priceBound(p, matching.SideBuy), w.maxPricePoints(p))
	if err != nil {
		return err
	}

	if !result.Failed && result.AmountSold.IsPositive() {
		w.publishTrade(book, result.AmountSold, result.AmountReceived, result.Fee, p.Owner, types.TypeSell)
	}

	return nil
}

func (w *EngineServer) placeBuyOrder(book *matching.Book, op *operator.Operator, p types.BookPayloadMessage) error {
	result, err := op.PlaceBuyOrder(book, p.Owner, p.Amount, p.Price, w.maxPricePoints(p))
	if err != nil {
		return err
	}

	if result.Failed {
		return nil
	}

	if result.AmountBought.IsPositive() {
		w.publishTrade(book, result.AmountBought, result.AmountPaid, result.Fee, p.Owner, types.TypeBuy)
	}

	if result.AmountPlaced.IsPositive() {
		return w.persistOrder(book, matching.SideBuy, p.Price, result.OrderID, p.Owner, result.AmountPlaced)
	}

	return nil
}

func (w *EngineServer) placeSellOrder(book *matching.Book, op *operator.Operator, p types.BookPayloadMessage) error {
	result, err := op.PlaceSellOrder(book, p.Owner, p.Amount, p.Price, w.maxPricePoints(p))
	if err != nil {
		return err
	}

	if result.Failed {
		return nil
	}

	if result.AmountSold.IsPositive() {
		w.publishTrade(book, result.AmountSold, result.AmountReceived, result.Fee, p.Owner, types.TypeSell)
	}

	if result.AmountPlaced.IsPositive() {
		return w.persistOrder(book, matching.SideSell, p.Price, result.OrderID, p.Owner, result.AmountPlaced)
	}

	return nil
}

func (w *EngineServer) persistOrder(book *matching.Book, side matching.Side, price decimal.Decimal, orderID uint64, owner uint64, amount decimal.Decimal) error {
	order := &models.Order{
		MarketID: book.Symbol,
		Side:     side,
		Price:    price,
		OrderID:  orderID,
		Owner:    owner,
		Amount:   amount,
		Claimed:  decimal.Zero,
		State:    models.StateWait,
	}

	return config.DataBase.Create(order).Error
}

func (w *EngineServer) cancelOrder(book *matching.Book, op *operator.Operator, p types.BookPayloadMessage) error {
	result, err := op.CancelOrder(book, p.Owner, p.Side, p.Price, p.OrderID, w.maxLastOrderID(p))
	if err != nil {
		return err
	}

	if result.Failed {
		return nil
	}

	return w.syncOrderRow(book, p.Side, p.Price, p.OrderID)
}

func (w *EngineServer) claimOrder(book *matching.Book, op *operator.Operator, p types.BookPayloadMessage) error {
	result, err := op.ClaimOrder(book, p.Owner, p.Side, p.Price, p.OrderID, p.Amount)
	if err != nil {
		return err
	}

	if result.Failed {
		return nil
	}

	return w.syncOrderRow(book, p.Side, p.Price, p.OrderID)
}

func (w *EngineServer) transferOrder(book *matching.Book, op *operator.Operator, p types.BookPayloadMessage) error {
	if !p.NewOwner.Valid {
		return errors.New("new owner is required")
	}

	result, err := op.TransferOrder(book, p.Owner, p.Side, p.Price, p.OrderID, p.NewOwner.Uint64)
	if err != nil {
		return err
	}

	if result.Failed {
		return nil
	}

	return config.DataBase.Model(&models.Order{}).
		Where("market_id = ? AND side = ? AND price = ? AND order_id = ?", book.Symbol, p.Side, p.Price, p.OrderID).
		Update("owner", p.NewOwner.Uint64).Error
}

// syncOrderRow mirrors the book's order record back into its durable row
// after a cancel or claim changed it.
func (w *EngineServer) syncOrderRow(book *matching.Book, side matching.Side, price decimal.Decimal, orderID uint64) error {
	order, err := book.Order(side, price, orderID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"amount":  order.Amount,
		"claimed": order.Claimed,
	}

	if order.Deleted() {
		updates["state"] = models.StateDone
	}

	return config.DataBase.Model(&models.Order{}).
		Where("market_id = ? AND side = ? AND price = ? AND order_id = ?", book.Symbol, side, price, orderID).
		Updates(updates).Error
}

func (w *EngineServer) GetBookByMarket(market string) *matching.Book {
	book, found := w.Books[market]

	if found {
		return book
	}

	return nil
}

func (w *EngineServer) Reload(market string) {
	if market == "all" {
		var markets []models.Market
		config.DataBase.Where("state = ?", types.MarketStateEndabled).Find(&markets)
		for _, market := range markets {
			w.InitializeBook(market.Symbol)
		}
		config.Logger.Info("All books reloaded.")
	} else {
		w.InitializeBook(market)
	}
}

func (w *EngineServer) InitializeBook(market string) {
	m := models.GetMarketBySymbol(market)
	if m == nil {
		config.Logger.Errorf("Market not found: %s", market)
		return
	}

	book := m.NewBook()
	book.OnChange(func(side matching.Side, price decimal.Decimal, available decimal.Decimal) {
		payload_message, _ := json.Marshal(DepthChangePayload{
			Market:    book.Symbol,
			Side:      side,
			Price:     price,
			Available: available,
		})

		if err := config.Nats.Publish("depth_cache", payload_message); err != nil {
			config.Logger.Errorf("Failed to publish depth change: %v", err.Error())
		}
	})

	w.Books[market] = book
	w.LoadOrders(book)
	config.Logger.Infof("%v book reloaded.", market)
}

// LoadOrders replays every waiting order back into the book in placement
// order. Filled-but-unclaimed state does not survive a replay; only the
// unclaimed residual is placed again.
func (w *EngineServer) LoadOrders(book *matching.Book) {
	for _, order := range models.GetWaitingOrders(book.Symbol) {
		residual := order.Amount.Sub(order.Claimed)
		if !residual.IsPositive() {
			continue
		}

		if _, err := book.Place(order.Side, order.Price, residual, order.Owner); err != nil {
			config.Logger.Errorf("Failed to replay order %d: %v", order.ID, err)
		}
	}
}

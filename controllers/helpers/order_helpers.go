package helpers

import (
	"encoding/json"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/models"
	"github.com/zsmartex/obex/types"
)

func PublishBookOperation(payload types.BookPayloadMessage) error {
	payload_message, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return config.Nats.Publish("book_operations", payload_message)
}

type CreateOrderParams struct {
	Market         string              `json:"market" form:"market" validate:"required"`
	Side           types.TakerType     `json:"side" form:"side" validate:"required|VaildateSide"`
	OrdType        types.OrderType     `json:"ord_type" form:"ord_type" validate:"VaildateOrdType"`
	Price          decimal.NullDecimal `json:"price" form:"price" validate:"VaildatePrice"`
	Amount         decimal.Decimal     `json:"amount" form:"amount" validate:"VaildateAmount"`
	PriceBound     decimal.NullDecimal `json:"price_bound" form:"price_bound" validate:"VaildatePriceBound"`
	MaxPricePoints null.Int            `json:"max_price_points" form:"max_price_points"`
}

func (p CreateOrderParams) Messages() map[string]string {
	invalid_message := "market.order.invalid_{field}"

	return validate.MS{
		"required":           invalid_message,
		"VaildateSide":       invalid_message,
		"VaildatePrice":      "market.order.non_positive_price",
		"VaildatePriceBound": "market.order.non_positive_price_bound",
		"VaildateAmount":     "market.order.non_positive_amount",
	}
}

func (p CreateOrderParams) VaildatePrice(Price decimal.NullDecimal) bool {
	if Price.Valid {
		return Price.Decimal.IsPositive()
	}

	return true
}

func (p CreateOrderParams) VaildatePriceBound(PriceBound decimal.NullDecimal) bool {
	if PriceBound.Valid {
		return !PriceBound.Decimal.IsNegative()
	}

	return true
}

func (p CreateOrderParams) VaildateOrdType(OrdType types.OrderType) bool {
	if OrdType == types.TypeMarket && p.Price.Valid {
		return false
	} else if OrdType == types.TypeLimit && !p.Price.Valid {
		return false
	}

	return true
}

func (p CreateOrderParams) VaildateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

func (p CreateOrderParams) VaildateSide(val types.TakerType) bool {
	return p.Side == types.TypeBuy || p.Side == types.TypeSell
}

func (p CreateOrderParams) GetMarket() *models.Market {
	return models.GetMarketBySymbol(p.Market)
}

// Submit turns the request into a book operation and hands it to the engine.
func (p CreateOrderParams) Submit(member *models.Member, err_src *Errors) {
	if len(p.OrdType) == 0 {
		p.OrdType = types.TypeLimit
	}

	market := p.GetMarket()
	if market == nil {
		err_src.Errors = append(err_src.Errors, "market.order.market_doesnt_exist")
		return
	}

	var action types.PayloadAction
	if p.OrdType == types.TypeMarket {
		if p.Side == types.TypeBuy {
			action = types.ActionBuyAtMarket
		} else {
			action = types.ActionSellAtMarket
		}
	} else {
		if p.Side == types.TypeBuy {
			action = types.ActionPlaceBuy
		} else {
			action = types.ActionPlaceSell
		}
	}

	payload := types.BookPayloadMessage{
		Action:         action,
		Market:         market.Symbol,
		Owner:          member.ID,
		Amount:         p.Amount,
		Price:          p.Price.Decimal,
		PriceBound:     p.PriceBound,
		MaxPricePoints: p.MaxPricePoints,
	}

	if err := PublishBookOperation(payload); err != nil {
		err_src.Errors = append(err_src.Errors, "market.order.submit_failed")
	}
}

type CancelOrderParams struct {
	MaxLastOrderID null.Uint64 `json:"max_last_order_id" form:"max_last_order_id"`
}

// SubmitCancel requests removal of the order's unfilled residual.
func (p CancelOrderParams) SubmitCancel(order *models.Order, err_src *Errors) {
	payload := types.BookPayloadMessage{
		Action:         types.ActionCancelOrder,
		Market:         order.MarketID,
		Owner:          order.Owner,
		Side:           order.Side,
		Price:          order.Price,
		OrderID:        order.OrderID,
		MaxLastOrderID: p.MaxLastOrderID,
	}

	if err := PublishBookOperation(payload); err != nil {
		err_src.Errors = append(err_src.Errors, "market.order.cancel_failed")
	}
}

type ClaimOrderParams struct {
	Amount decimal.Decimal `json:"amount" form:"amount" validate:"VaildateAmount"`
}

func (p ClaimOrderParams) Messages() map[string]string {
	return validate.MS{
		"VaildateAmount": "market.order.non_positive_amount",
	}
}

func (p ClaimOrderParams) VaildateAmount(Amount decimal.Decimal) bool {
	return Amount.IsPositive()
}

// SubmitClaim withdraws settled proceeds from the order.
func (p ClaimOrderParams) SubmitClaim(order *models.Order, err_src *Errors) {
	payload := types.BookPayloadMessage{
		Action:  types.ActionClaimOrder,
		Market:  order.MarketID,
		Owner:   order.Owner,
		Side:    order.Side,
		Price:   order.Price,
		OrderID: order.OrderID,
		Amount:  p.Amount,
	}

	if err := PublishBookOperation(payload); err != nil {
		err_src.Errors = append(err_src.Errors, "market.order.claim_failed")
	}
}

type TransferOrderParams struct {
	NewOwner uint64 `json:"new_owner" form:"new_owner" validate:"required"`
}

func (p TransferOrderParams) Messages() map[string]string {
	return validate.MS{
		"required": "market.order.invalid_new_owner",
	}
}

// SubmitTransfer reassigns the order to another owner.
func (p TransferOrderParams) SubmitTransfer(order *models.Order, err_src *Errors) {
	payload := types.BookPayloadMessage{
		Action:   types.ActionTransferOrder,
		Market:   order.MarketID,
		Owner:    order.Owner,
		Side:     order.Side,
		Price:    order.Price,
		OrderID:  order.OrderID,
		NewOwner: null.Uint64From(p.NewOwner),
	}

	if err := PublishBookOperation(payload); err != nil {
		err_src.Errors = append(err_src.Errors, "market.order.transfer_failed")
	}
}

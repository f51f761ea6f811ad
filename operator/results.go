package operator

import (
	"github.com/shopspring/decimal"
)

// Result is embedded in every state-changing operation result. Failed is set
// for expected business-condition failures (soft errors); the call itself
// still succeeds and no balances move. Hard failures are returned as plain
// errors instead.
type Result struct {
	Failed bool   `json:"failed"`
	Error  string `json:"error,omitempty"`

	Err error `json:"-"`
}

func failure(err error) Result {
	return Result{
		Failed: true,
		Error:  err.Error(),
		Err:    err,
	}
}

type BuyAtMarketResult struct {
	Result

	AmountBought decimal.Decimal `json:"amount_bought"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Fee          decimal.Decimal `json:"fee"`
}

type SellAtMarketResult struct {
	Result

	AmountSold     decimal.Decimal `json:"amount_sold"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Fee            decimal.Decimal `json:"fee"`
}

type PlaceBuyOrderResult struct {
	Result

	AmountBought decimal.Decimal `json:"amount_bought"`
	AmountPaid   decimal.Decimal `json:"amount_paid"`
	Fee          decimal.Decimal `json:"fee"`
	AmountPlaced decimal.Decimal `json:"amount_placed"`
	OrderID      uint64          `json:"order_id"`
}

type PlaceSellOrderResult struct {
	Result

	AmountSold     decimal.Decimal `json:"amount_sold"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Fee            decimal.Decimal `json:"fee"`
	AmountPlaced   decimal.Decimal `json:"amount_placed"`
	OrderID        uint64          `json:"order_id"`
}

type CancelOrderResult struct {
	Result

	AmountCanceled decimal.Decimal `json:"amount_canceled"`
}

type ClaimOrderResult struct {
	Result

	AmountClaimed decimal.Decimal `json:"amount_claimed"`
	Fee           decimal.Decimal `json:"fee"`
}

type TransferOrderResult struct {
	Result
}

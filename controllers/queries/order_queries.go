package queries

import (
	"github.com/zsmartex/obex/controllers/helpers"
	"github.com/zsmartex/obex/types"
)

type OrderFilters struct {
	Market   string          `query:"market"`
	State    string          `query:"state"`
	Side     types.TakerType `query:"side" validate:"ValidateSide"`
	Limit    int             `query:"limit" validate:"uint"`
	Page     int             `query:"page" validate:"uint"`
	TimeFrom int64           `query:"time_from" validate:"uint"`
	TimeTo   int64           `query:"time_to" validate:"uint"`
	OrderBy  types.OrderBy   `query:"order_by" validate:"ValidateOrderBy"`
}

func (t OrderFilters) ValidateOrderBy(val types.OrderBy) bool {
	return helpers.ValidateOrderBy(val)
}

func (t OrderFilters) ValidateSide(val types.TakerType) bool {
	return helpers.ValidateTakerType(val)
}

func (t OrderFilters) Messages() map[string]string {
	return helpers.VaildateMessage("market.order")
}

func (t OrderFilters) Translates() map[string]string {
	return helpers.VaildateTranslateFields()
}

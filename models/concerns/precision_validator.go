package concerns

import (
	"github.com/shopspring/decimal"
)

type PrecisionValidator struct {
}

// WholeUnits reports whether value carries no fraction below the asset's
// smallest unit.
func (p PrecisionValidator) WholeUnits(value decimal.Decimal) bool {
	return value.Equal(value.Floor())
}

func (p PrecisionValidator) LessThanOrEqTo(value decimal.Decimal, precision int32) bool {
	return value.Equal(value.Round(precision))
}

package helpers

import (
	"github.com/gookit/validate"

	"github.com/zsmartex/obex/types"
)

type Errors struct {
	Errors []string `json:"errors"`
}

func (e Errors) Size() int {
	return len(e.Errors)
}

func Vaildate(payload interface{}, err_src *Errors) {
	v := validate.Struct(payload)
	if !v.Validate() {
		for _, errs := range v.Errors.All() {
			for _, err := range errs {
				err_src.Errors = append(err_src.Errors, err)
			}
		}
	}
}

func VaildateMessage(prefix string) map[string]string {
	return validate.MS{
		"required": prefix + ".invalid_{field}",
		"uint":     prefix + ".invalid_{field}",
	}
}

func VaildateTranslateFields() map[string]string {
	return validate.MS{}
}

func ValidateOrderBy(val types.OrderBy) bool {
	return len(val) == 0 || val == types.OrderByAsc || val == types.OrderByDesc
}

func ValidateTakerType(val types.TakerType) bool {
	return len(val) == 0 || val == types.TypeBuy || val == types.TypeSell
}

package matching

import "errors"

var (
	ErrInvalidAmount      = errors.New("orderbook.invalid_amount")
	ErrInvalidPrice       = errors.New("orderbook.invalid_price")
	ErrInvalidArgument    = errors.New("orderbook.invalid_argument")
	ErrInvalidOrderID     = errors.New("orderbook.invalid_order_id")
	ErrAlreadyFilled      = errors.New("orderbook.already_filled")
	ErrOrderDeleted       = errors.New("orderbook.order_deleted")
	ErrOverMaxLastOrderID = errors.New("orderbook.over_max_last_order_id")
	ErrUnauthorized       = errors.New("orderbook.unauthorized")
)

// IsSoftError reports whether err is an expected business outcome the caller
// should branch on. Soft failures never leave a partially updated book.
// ErrUnauthorized is deliberately excluded: a correct caller never submits an
// operation on someone else's order, so it is treated as a caller bug.
func IsSoftError(err error) bool {
	switch err {
	case ErrInvalidAmount,
		ErrInvalidPrice,
		ErrInvalidArgument,
		ErrInvalidOrderID,
		ErrAlreadyFilled,
		ErrOrderDeleted,
		ErrOverMaxLastOrderID:
		return true
	}

	return false
}

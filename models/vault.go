package models

import (
	"github.com/shopspring/decimal"
)

// Vault settles book operations against the account ledger. Deposits move
// owner funds into book escrow, withdrawals pay escrowed funds back out.
type Vault struct {
}

func (v Vault) Deposit(unit string, owner uint64, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}

	return GetAccount(owner, unit).SubFunds(Lock(), amount)
}

func (v Vault) Withdraw(unit string, owner uint64, amount decimal.Decimal) error {
	if amount.IsZero() {
		return nil
	}

	return GetAccount(owner, unit).PlusFunds(Lock(), amount)
}

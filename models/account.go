package models

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/mq_client"
)

// Account holds one owner's balance of one asset unit. Funds an order
// escrows leave the balance entirely; the book itself is the escrow.
type Account struct {
	ID        uint64          `json:"id" gorm:"primaryKey"`
	Owner     uint64          `json:"owner"`
	Unit      string          `json:"unit"`
	Balance   decimal.Decimal `json:"balance" validate:"ValidateBalance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (a Account) ValidateBalance(Balance decimal.Decimal) bool {
	return Balance.GreaterThanOrEqual(decimal.Zero)
}

func (a *Account) Member() Member {
	var member Member

	config.DataBase.First(&member, "id = ?", a.Owner)

	return member
}

func (a *Account) BeforeSave(tx *gorm.DB) (err error) {
	a.TriggerEvent()

	return
}

func (a *Account) TriggerEvent() {
	member := a.Member()
	payload_message, _ := json.Marshal(a.ToJSON())

	mq_client.EnqueueEvent("private", member.UID, "balance", payload_message)
}

func (a *Account) PlusFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.New("Cannot add funds (owner: " + strconv.FormatUint(a.Owner, 10) + ", unit: " + a.Unit + ", amount: " + amount.String() + ", balance: " + a.Balance.String() + ").")
	}

	a.Balance = a.Balance.Add(amount)
	return tx.Save(&a).Error
}

func (a *Account) SubFunds(tx *gorm.DB, amount decimal.Decimal) error {
	if !amount.IsPositive() || amount.GreaterThan(a.Balance) {
		return errors.New("Cannot subtract funds (owner: " + strconv.FormatUint(a.Owner, 10) + ", unit: " + a.Unit + ", amount: " + amount.String() + ", balance: " + a.Balance.String() + ").")
	}

	a.Balance = a.Balance.Sub(amount)
	return tx.Save(&a).Error
}

func GetAccount(owner uint64, unit string) *Account {
	var account *Account

	config.DataBase.FirstOrCreate(&account, Account{Owner: owner, Unit: unit})

	return account
}

type AccountJSON struct {
	Unit    string          `json:"unit"`
	Balance decimal.Decimal `json:"balance"`
}

func (a *Account) ToJSON() AccountJSON {
	return AccountJSON{
		Unit:    a.Unit,
		Balance: a.Balance,
	}
}

package models

import (
	"io/ioutil"
	"time"

	"github.com/gookit/validate"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/matching"
	"github.com/zsmartex/obex/types"
)

type Market struct {
	ID           int64             `json:"id" gorm:"primaryKey"`
	Symbol       string            `json:"symbol" validate:"required"`
	BaseUnit     string            `json:"base_unit" validate:"required"`
	QuoteUnit    string            `json:"quote_unit" validate:"required"`
	PriceTick    decimal.Decimal   `json:"price_tick" validate:"PriceTickVaildator"`
	ContractSize decimal.Decimal   `json:"contract_size" validate:"ContractSizeVaildator"`
	FeeRate      decimal.Decimal   `json:"fee_rate" validate:"FeeRateVaildator"`
	State        types.MarketState `json:"state" gorm:"default:enabled"`
	Position     int32             `json:"position"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func (m Market) Message() map[string]string {
	invalid_message := "market.invalid_{field}"

	return validate.MS{
		"required": invalid_message,
	}
}

func (m Market) PriceTickVaildator(PriceTick decimal.Decimal) bool {
	if !PriceTick.IsPositive() {
		return false
	}

	return precision_validator.WholeUnits(PriceTick)
}

func (m Market) ContractSizeVaildator(ContractSize decimal.Decimal) bool {
	if !ContractSize.IsPositive() {
		return false
	}

	return precision_validator.WholeUnits(ContractSize)
}

func (m Market) FeeRateVaildator(FeeRate decimal.Decimal) bool {
	if FeeRate.IsNegative() {
		return false
	}

	return FeeRate.LessThan(decimal.NewFromInt(1))
}

// NewBook builds the in-memory book this market trades on.
func (m *Market) NewBook() *matching.Book {
	return matching.NewBook(m.Symbol, m.BaseUnit, m.QuoteUnit, m.PriceTick, m.ContractSize, m.FeeRate)
}

type MarketSeed struct {
	Symbol       string `yaml:"symbol"`
	BaseUnit     string `yaml:"base_unit"`
	QuoteUnit    string `yaml:"quote_unit"`
	PriceTick    string `yaml:"price_tick"`
	ContractSize string `yaml:"contract_size"`
	FeeRate      string `yaml:"fee_rate"`
	Position     int32  `yaml:"position"`
}

// SeedMarkets upserts the markets listed in config/markets.yml.
func SeedMarkets() error {
	buf, err := ioutil.ReadFile("config/markets.yml")
	if err != nil {
		return err
	}

	seeds := []MarketSeed{}
	if err := yaml.Unmarshal(buf, &seeds); err != nil {
		return err
	}

	for _, seed := range seeds {
		price_tick, err := decimal.NewFromString(seed.PriceTick)
		if err != nil {
			return err
		}
		contract_size, err := decimal.NewFromString(seed.ContractSize)
		if err != nil {
			return err
		}
		fee_rate, err := decimal.NewFromString(seed.FeeRate)
		if err != nil {
			return err
		}

		market := Market{
			Symbol:       seed.Symbol,
			BaseUnit:     seed.BaseUnit,
			QuoteUnit:    seed.QuoteUnit,
			PriceTick:    price_tick,
			ContractSize: contract_size,
			FeeRate:      fee_rate,
			Position:     seed.Position,
		}

		result := config.DataBase.Where("symbol = ?", seed.Symbol).FirstOrCreate(&market)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}

func GetMarketBySymbol(symbol string) *Market {
	market := &Market{}

	result := config.DataBase.First(market, "symbol = ?", symbol)
	if result.Error != nil {
		return nil
	}

	return market
}

package controllers

import (
	"errors"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/controllers/helpers"
	"github.com/zsmartex/obex/controllers/queries"
	"github.com/zsmartex/obex/models"
	"github.com/zsmartex/obex/services/depth_service"
	"github.com/zsmartex/obex/types"
)

func GetTimestamp(c *fiber.Ctx) error {

	c.Status(200).JSON(time.Now())

	return nil
}

func GetMarkets(c *fiber.Ctx) error {
	var markets []models.Market

	config.DataBase.Order("position asc").Find(&markets, "state = ?", types.MarketStateEndabled)

	return c.Status(200).JSON(markets)
}

// GetDepth lists both sides of a market's book best price first, from the
// depth cache the engine maintains.
func GetDepth(c *fiber.Ctx) error {
	var errs = new(helpers.Errors)

	marketID := c.Params("market")
	params := new(queries.DepthQuery)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	helpers.Vaildate(params, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	var market *models.Market
	if result := config.DataBase.First(&market, "symbol = ?", marketID); errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"public.market.doesnt_exist"},
		})
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	depth := depth_service.Fetch(market.Symbol).ToJSON()

	sort.Slice(depth.Asks, func(i, j int) bool {
		return depth.Asks[i][0].LessThan(depth.Asks[j][0])
	})
	sort.Slice(depth.Bids, func(i, j int) bool {
		return depth.Bids[i][0].GreaterThan(depth.Bids[j][0])
	})

	if len(depth.Asks) > params.Limit {
		depth.Asks = depth.Asks[:params.Limit]
	}
	if len(depth.Bids) > params.Limit {
		depth.Bids = depth.Bids[:params.Limit]
	}

	return c.Status(200).JSON(depth)
}

func GetGlobalPrice(c *fiber.Ctx) error {
	var global_price types.GlobalPrice

	if err := config.Redis.GetKey("obex:h24:global_price", &global_price); err != nil {
		config.Logger.Errorf("Failed to fetch global price %v", err)

		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"public.global_price.failed"},
		})
	}

	return c.Status(200).JSON(global_price)
}

func GetGlobalTrades(c *fiber.Ctx) error {
	marketID := c.Params("market")

	var trades []models.Trade
	trades_json := make([]models.TradeGlobalJSON, 0)

	config.DataBase.Order("id desc").Limit(100).Find(&trades, "market_id = ?", marketID)

	for _, trade := range trades {
		trades_json = append(trades_json, trade.TradeGlobalJSON())
	}

	return c.Status(200).JSON(trades_json)
}

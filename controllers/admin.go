package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/controllers/helpers"
	"github.com/zsmartex/obex/models"
	"github.com/zsmartex/obex/types"
)

func CreateMarket(c *fiber.Ctx) error {
	errs := new(helpers.Errors)
	market := new(models.Market)

	if err := c.BodyParser(market); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Vaildate(market, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	if err := config.DataBase.Create(market).Error; err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"admin.market.create_failed"},
		})
	}

	helpers.PublishBookOperation(types.BookPayloadMessage{
		Action: types.ActionNew,
		Market: market.Symbol,
	})

	return c.Status(201).JSON(market)
}

func ReloadBook(c *fiber.Ctx) error {
	market := c.Params("market")

	if err := helpers.PublishBookOperation(types.BookPayloadMessage{
		Action: types.ActionReload,
		Market: market,
	}); err != nil {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"admin.market.reload_failed"},
		})
	}

	return c.Status(200).JSON(200)
}

package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/controllers/helpers"
	"github.com/zsmartex/obex/models"
)

func GetAccounts(c *fiber.Ctx) error {
	CurrentUser := currentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var accounts []models.Account

	config.DataBase.Where(&models.Account{Owner: CurrentUser.ID}).Find(&accounts)

	c.Status(200).JSON(accounts)

	return nil
}

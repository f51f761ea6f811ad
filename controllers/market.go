package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zsmartex/obex/config"
	"github.com/zsmartex/obex/controllers/entities"
	"github.com/zsmartex/obex/controllers/helpers"
	"github.com/zsmartex/obex/controllers/queries"
	"github.com/zsmartex/obex/models"
	"github.com/zsmartex/obex/types"
)

func currentUser(c *fiber.Ctx) *models.Member {
	member, ok := c.Locals("CurrentUser").(*models.Member)
	if !ok {
		return nil
	}

	return member
}

func CreateOrder(c *fiber.Ctx) error {
	CurrentUser := currentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	errs := new(helpers.Errors)
	payload := new(helpers.CreateOrderParams)

	if err := c.BodyParser(payload); err != nil {
		c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})

		return err
	}

	helpers.Vaildate(payload, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	payload.Submit(CurrentUser, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	return c.Status(201).JSON(201)
}

func GetOrders(c *fiber.Ctx) error {
	CurrentUser := currentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var orders []models.Order
	orders_json := make([]entities.OrderEntity, 0)

	params := new(queries.OrderFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	if len(params.OrderBy) == 0 {
		params.OrderBy = types.OrderByDesc
	}

	tx := config.DataBase.Order("updated_at "+params.OrderBy).Where("owner = ?", CurrentUser.ID)

	if len(params.Market) > 0 {
		tx = tx.Where("market_id = ?", params.Market)
	}

	if len(params.Side) > 0 {
		tx = tx.Where("side = ?", params.Side)
	}

	if len(params.State) > 0 {
		state := models.StateWait

		switch params.State {
		case "wait":
			state = models.StateWait
		case "cancel":
			state = models.StateCancel
		case "done":
			state = models.StateDone
		default:
			return c.Status(422).JSON(helpers.Errors{
				Errors: []string{"market.order.invalid_state"},
			})
		}

		tx = tx.Where("state = ?", state)
	}

	if params.TimeFrom > 0 {
		time_from := time.Unix(params.TimeFrom, 0)
		tx = tx.Where("created_at >= ?", time_from)
	}

	if params.TimeTo > 0 {
		time_to := time.Unix(params.TimeTo, 0)
		tx = tx.Where("created_at < ?", time_to)
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	if params.Page == 0 {
		params.Page = 1
	}

	tx = tx.Offset(params.Page*params.Limit - params.Limit).Limit(params.Limit)

	tx.Find(&orders)

	for _, order := range orders {
		orders_json = append(orders_json, order.ToJSON())
	}

	return c.Status(200).JSON(orders_json)
}

func findMemberOrder(c *fiber.Ctx) (*models.Order, error) {
	CurrentUser := currentUser(c)

	if CurrentUser == nil {
		return nil, c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, c.Status(422).JSON(helpers.Errors{
			Errors: []string{"market.order.invaild_id"},
		})
	}

	var order *models.Order

	result := config.DataBase.Where("id = ? AND owner = ?", id, CurrentUser.ID).First(&order)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, c.Status(404).JSON(helpers.Errors{
			Errors: []string{"record.not_found"},
		})
	}

	return order, nil
}

func GetOrderByID(c *fiber.Ctx) error {
	order, err := findMemberOrder(c)
	if order == nil {
		return err
	}

	return c.Status(200).JSON(order.ToJSON())
}

func CancelOrderByID(c *fiber.Ctx) error {
	order, err := findMemberOrder(c)
	if order == nil {
		return err
	}

	if order.State != models.StateWait {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"market.order.invalid_state"},
		})
	}

	errs := new(helpers.Errors)
	params := new(helpers.CancelOrderParams)

	if err := c.BodyParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	params.SubmitCancel(order, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	return c.Status(200).JSON(order.ToJSON())
}

func ClaimOrderByID(c *fiber.Ctx) error {
	order, err := findMemberOrder(c)
	if order == nil {
		return err
	}

	errs := new(helpers.Errors)
	params := new(helpers.ClaimOrderParams)

	if err := c.BodyParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Vaildate(params, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	params.SubmitClaim(order, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	return c.Status(200).JSON(order.ToJSON())
}

func TransferOrderByID(c *fiber.Ctx) error {
	order, err := findMemberOrder(c)
	if order == nil {
		return err
	}

	if order.State != models.StateWait {
		return c.Status(422).JSON(helpers.Errors{
			Errors: []string{"market.order.invalid_state"},
		})
	}

	errs := new(helpers.Errors)
	params := new(helpers.TransferOrderParams)

	if err := c.BodyParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_message_body"},
		})
	}

	helpers.Vaildate(params, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	params.SubmitTransfer(order, errs)

	if errs.Size() > 0 {
		return c.Status(422).JSON(errs)
	}

	return c.Status(200).JSON(order.ToJSON())
}

func GetTrades(c *fiber.Ctx) error {
	CurrentUser := currentUser(c)

	if CurrentUser == nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"jwt.decode_and_verify"},
		})
	}

	var trades []models.Trade
	trades_json := make([]entities.TradeEntity, 0)

	params := new(queries.TradeFilters)
	if err := c.QueryParser(params); err != nil {
		return c.Status(500).JSON(helpers.Errors{
			Errors: []string{"server.method.invalid_query"},
		})
	}

	if len(params.OrderBy) == 0 {
		params.OrderBy = types.OrderByDesc
	}

	tx := config.DataBase.Order("id "+params.OrderBy).Where("taker_owner = ?", CurrentUser.ID)

	if len(params.Market) > 0 {
		tx = tx.Where("market_id = ?", params.Market)
	}

	if len(params.Type) > 0 {
		tx = tx.Where("taker_type = ?", params.Type)
	}

	if params.TimeFrom > 0 {
		tx = tx.Where("created_at >= ?", time.Unix(params.TimeFrom, 0))
	}

	if params.TimeTo > 0 {
		tx = tx.Where("created_at < ?", time.Unix(params.TimeTo, 0))
	}

	if params.Limit == 0 {
		params.Limit = 100
	}

	if params.Page == 0 {
		params.Page = 1
	}

	tx = tx.Offset(params.Page*params.Limit - params.Limit).Limit(params.Limit)

	tx.Find(&trades)

	for _, trade := range trades {
		trades_json = append(trades_json, trade.ToJSON())
	}

	return c.Status(200).JSON(trades_json)
}

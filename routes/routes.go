package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/obex/controllers"
	"github.com/zsmartex/obex/routes/middlewares"
)

func SetupRouter() *fiber.App {
	app := fiber.New()

	app.Get("/api/v2/public/timestamp", controllers.GetTimestamp)
	app.Get("/api/v2/public/markets", controllers.GetMarkets)
	app.Get("/api/v2/public/markets/:market/depth", controllers.GetDepth)
	app.Get("/api/v2/public/markets/:market/trades", controllers.GetGlobalTrades)
	app.Get("/api/v2/public/global_price", controllers.GetGlobalPrice)

	market := app.Group("/api/v2/market", middlewares.Authenticate)
	market.Post("/orders", controllers.CreateOrder)
	market.Get("/orders", controllers.GetOrders)
	market.Get("/orders/:id", controllers.GetOrderByID)
	market.Post("/orders/:id/cancel", controllers.CancelOrderByID)
	market.Post("/orders/:id/claim", controllers.ClaimOrderByID)
	market.Post("/orders/:id/transfer", controllers.TransferOrderByID)
	market.Get("/trades", controllers.GetTrades)

	account := app.Group("/api/v2/account", middlewares.Authenticate)
	account.Get("/balances", controllers.GetAccounts)

	admin := app.Group("/api/v2/admin", middlewares.Authenticate, middlewares.AdminVaildator)
	admin.Post("/markets", controllers.CreateMarket)
	admin.Post("/markets/:market/reload", controllers.ReloadBook)

	return app
}

package routes

import (
	"github.com/gofiber/fiber/v2"

	"matka/controllers/admin"
	"matka/controllers/market"
	"matka/controllers/user"
	"matka/middlewares"
)

func Setup(app *fiber.App) {
	userroutes := app.Group("/user", middlewares.UserAuth)
	userroutes.Post("/balance", user.CheckBalance)
	userroutes.Post("/bets", user.PlaceBet)
	userroutes.Get("/bets", user.MyBets)

	marketroutes := app.Group("/markets", middlewares.UserAuth)
	marketroutes.Get("/", market.List)
	marketroutes.Get("/:id/status", market.Status)

	adminroutes := app.Group("/admin", middlewares.AdminAuth())
	adminroutes.Post("/markets", admin.CreateMarket)
	adminroutes.Delete("/markets/:id", admin.DeleteMarket)
	adminroutes.Post("/markets/:id/reset", admin.ResetMarket)
	adminroutes.Post("/markets/:id/declare", admin.DeclareResult)
	adminroutes.Post("/markets/:id/declare/force", admin.ForceDeclareResult)
	adminroutes.Post("/markets/:id/schedule-result", admin.ScheduleResult)
	adminroutes.Post("/markets/:id/close", admin.CloseMarket)
	adminroutes.Get("/markets/:id/summary", admin.MarketSummary)
	adminroutes.Post("/users", admin.CreateUser)
	adminroutes.Post("/users/adjust", admin.AdjustBalance)
	adminroutes.Post("/bets/cancel", admin.CancelBet)
}

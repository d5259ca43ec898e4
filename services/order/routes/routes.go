package routes

import (
	"seller-marketplace/services/order/handlers"
	"seller-marketplace/shared/config"
	"seller-marketplace/shared/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(api fiber.Router, orderHandler *handlers.OrderHandler, cfg *config.Config, roles *middleware.RoleResolver) {
	auth := middleware.AuthMiddleware(cfg)
	buyer := roles.Buyer()

	// Buyer-only routes
	api.Post("/orders", auth, buyer, orderHandler.CreateOrder)
	api.Get("/myorders", auth, buyer, middleware.SelfQuery("email"), orderHandler.GetMyOrders)
}

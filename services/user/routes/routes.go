package routes

import (
	"seller-marketplace/services/user/handlers"
	"seller-marketplace/shared/config"
	"seller-marketplace/shared/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router, userHandler *handlers.UserHandler, cfg *config.Config, roles *middleware.RoleResolver) {
	auth := middleware.AuthMiddleware(cfg)
	admin := roles.Admin()

	api.Post("/users", userHandler.CreateUser)

	// Admin-only routes
	users := api.Group("/users")
	users.Get("/buyers", auth, admin, userHandler.ListBuyers)
	users.Delete("/buyers/:id", auth, admin, userHandler.DeleteBuyer)
	users.Get("/sellers", auth, admin, userHandler.ListSellers)
	users.Delete("/sellers/:id", auth, admin, userHandler.DeleteSeller)
	users.Post("/sellers", auth, admin, userHandler.VerifySeller)
}

package routes

import (
	"seller-marketplace/services/auth/handlers"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router, authHandler *handlers.AuthHandler) {
	api.Get("/jwt", authHandler.IssueToken)

	// Role probes used by the client to pick a dashboard
	users := api.Group("/users")
	users.Get("/seller/:email", authHandler.IsSeller)
	users.Get("/buyer/:email", authHandler.IsBuyer)
	users.Get("/admin/:email", authHandler.IsAdmin)
}

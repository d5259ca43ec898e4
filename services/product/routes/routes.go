package routes

import (
	"seller-marketplace/services/product/handlers"
	"seller-marketplace/shared/config"
	"seller-marketplace/shared/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProductRoutes(api fiber.Router, productHandler *handlers.ProductHandler, cfg *config.Config, roles *middleware.RoleResolver) {
	auth := middleware.AuthMiddleware(cfg)

	// Public routes
	api.Get("/categoriesType", productHandler.GetCategories)
	api.Get("/category/:id", productHandler.GetCategoryProducts)
	api.Get("/advertiseproducts", productHandler.GetAdvertisedProducts)

	// Seller-only routes
	seller := roles.Seller()
	api.Post("/categories", auth, seller, productHandler.CreateProduct)
	api.Get("/myproducts", auth, seller, middleware.SelfQuery("email"), productHandler.GetMyProducts)
	api.Delete("/product/:id", auth, seller, productHandler.DeleteProduct)
	api.Put("/product/:id", auth, seller, productHandler.AdvertiseProduct)

	// Reports
	api.Put("/productReport/:id", auth, roles.Buyer(), productHandler.ReportProduct)
	admin := roles.Admin()
	api.Get("/showReports", auth, admin, productHandler.GetReportedProducts)
	api.Delete("/reportedproduct/:id", auth, admin, productHandler.DeleteReportedProduct)
}

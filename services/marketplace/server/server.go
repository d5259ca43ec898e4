// Package server assembles the HTTP application from its dependencies.
package server

import (
	"errors"

	authhandlers "seller-marketplace/services/auth/handlers"
	authroutes "seller-marketplace/services/auth/routes"
	orderhandlers "seller-marketplace/services/order/handlers"
	orderroutes "seller-marketplace/services/order/routes"
	producthandlers "seller-marketplace/services/product/handlers"
	productroutes "seller-marketplace/services/product/routes"
	userhandlers "seller-marketplace/services/user/handlers"
	userroutes "seller-marketplace/services/user/routes"
	"seller-marketplace/shared/config"
	"seller-marketplace/shared/middleware"
	"seller-marketplace/shared/redis"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/utils"

	_ "seller-marketplace/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
)

const banner = "Seller BD server is Running here"

type Deps struct {
	Config *config.Config
	Store  *store.Store
	// Cache may be nil.
	Cache *redis.Cache
	Log   zerolog.Logger
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Seller BD",
		ErrorHandler: errorHandler(d.Log),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.Server.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(d.Log))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(banner)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "marketplace",
		})
	})

	app.Get("/swagger/*", swagger.HandlerDefault)

	roles := middleware.NewRoleResolver(d.Store.Users)

	authroutes.SetupAuthRoutes(app, authhandlers.NewAuthHandler(d.Config, d.Store.Users))
	userroutes.SetupUserRoutes(app, userhandlers.NewUserHandler(d.Config, d.Store, d.Cache, d.Log), d.Config, roles)
	productroutes.SetupProductRoutes(app, producthandlers.NewProductHandler(d.Config, d.Store, d.Cache, d.Log), d.Config, roles)
	orderroutes.SetupOrderRoutes(app, orderhandlers.NewOrderHandler(d.Config, d.Store, d.Log), d.Config, roles)

	return app
}

func errorHandler(log zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		}

		return utils.ErrorResponse(c, code, message, err)
	}
}

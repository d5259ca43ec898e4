package handlers

import (
	"errors"
	"fmt"

	"seller-marketplace/shared/config"
	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type OrderHandler struct {
	config *config.Config
	orders store.Orders
	log    zerolog.Logger
}

func NewOrderHandler(cfg *config.Config, st *store.Store, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		config: cfg,
		orders: st.Orders,
		log:    log,
	}
}

// @Summary Book product
// @Description Store a booking unless the buyer already booked a product with the same name.
// @Description A repeat booking is answered with acknowledged=false and a message, not an error.
// @Tags orders
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.Order true "Order"
// @Success 200 {object} models.InsertResult
// @Success 200 {object} models.BookingRejected
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var order models.Order
	if err := c.BodyParser(&order); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	ctx := c.UserContext()
	booked, err := h.orders.CountByBuyerAndProduct(ctx, order.Email, order.ProductName)
	if err != nil {
		return err
	}
	if booked > 0 {
		return c.JSON(alreadyBooked(order.ProductName))
	}

	result, err := h.orders.Insert(ctx, &order)
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent request won the race past the count.
		h.log.Debug().Str("email", order.Email).Str("product", order.ProductName).Msg("duplicate booking rejected by index")
		return c.JSON(alreadyBooked(order.ProductName))
	}
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func alreadyBooked(productName string) models.BookingRejected {
	return models.BookingRejected{
		Acknowledged: false,
		Message:      fmt.Sprintf("You already have booked %s", productName),
	}
}

// @Summary List own orders
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param email query string true "Buyer email, must match the token"
// @Success 200 {array} models.Order
// @Failure 403 {object} utils.Response
// @Router /myorders [get]
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListByBuyer(c.UserContext(), c.Query("email"))
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

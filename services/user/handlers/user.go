package handlers

import (
	"errors"

	"seller-marketplace/shared/config"
	"seller-marketplace/shared/models"
	"seller-marketplace/shared/redis"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	config   *config.Config
	users    store.Users
	products store.Products
	cache    *redis.Cache
	log      zerolog.Logger
}

type VerifySellerRequest struct {
	ID    models.ID `json:"_id"`
	Email string    `json:"email"`
}

func NewUserHandler(cfg *config.Config, st *store.Store, cache *redis.Cache, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		config:   cfg,
		users:    st.Users,
		products: st.Products,
		cache:    cache,
		log:      log,
	}
}

// @Summary Register user
// @Description Store a user document after client-side signup
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.User true "User"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}

	result, err := h.users.Insert(c.UserContext(), &user)
	if errors.Is(err, store.ErrDuplicate) {
		return utils.ConflictResponse(c, "User with this email already exists")
	}
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// @Summary List buyers
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /users/buyers [get]
func (h *UserHandler) ListBuyers(c *fiber.Ctx) error {
	return h.listByRole(c, models.RoleBuyer)
}

// @Summary List sellers
// @Tags users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /users/sellers [get]
func (h *UserHandler) ListSellers(c *fiber.Ctx) error {
	return h.listByRole(c, models.RoleSeller)
}

func (h *UserHandler) listByRole(c *fiber.Ctx, role models.UserRole) error {
	users, err := h.users.ListByRole(c.UserContext(), role)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// @Summary Delete buyer
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.DeleteResult
// @Router /users/buyers/{id} [delete]
func (h *UserHandler) DeleteBuyer(c *fiber.Ctx) error {
	return h.deleteUser(c)
}

// @Summary Delete seller
// @Tags users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.DeleteResult
// @Router /users/sellers/{id} [delete]
func (h *UserHandler) DeleteSeller(c *fiber.Ctx) error {
	return h.deleteUser(c)
}

func (h *UserHandler) deleteUser(c *fiber.Ctx) error {
	result, err := h.users.Delete(c.UserContext(), models.ID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// @Summary Verify seller
// @Description Mark the seller verified, then mark every product they own verified.
// @Description The two writes are independent; the response is the user update result.
// @Tags users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body VerifySellerRequest true "Seller"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} utils.Response
// @Router /users/sellers [post]
func (h *UserHandler) VerifySeller(c *fiber.Ctx) error {
	var req VerifySellerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ValidationErrorResponse(c, "Invalid request body")
	}
	if req.ID.IsZero() || req.Email == "" {
		return utils.ValidationErrorResponse(c, "Seller _id and email are required")
	}

	ctx := c.UserContext()
	result, err := h.users.MarkVerified(ctx, req.ID)
	if err != nil {
		return err
	}

	products, err := h.products.MarkOwnerVerified(ctx, req.Email)
	if err != nil {
		return err
	}
	redis.Invalidate(ctx, h.cache, h.log, redis.AdvertisedKey)

	h.log.Info().
		Str("seller", req.Email).
		Int64("products", products.ModifiedCount).
		Msg("seller verified")

	return c.JSON(result)
}

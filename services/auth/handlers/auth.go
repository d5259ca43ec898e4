package handlers

import (
	"errors"

	"seller-marketplace/shared/config"
	"seller-marketplace/shared/middleware"
	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	config *config.Config
	users  store.Users
	roles  *middleware.RoleResolver
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

type IsSellerResponse struct {
	IsSeller bool `json:"isSeller"`
}

type IsBuyerResponse struct {
	IsBuyer bool `json:"isBuyer"`
}

type IsAdminResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

func NewAuthHandler(cfg *config.Config, users store.Users) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		users:  users,
		roles:  middleware.NewRoleResolver(users),
	}
}

// @Summary Issue access token
// @Description Issue a 24 hour token for a registered email
// @Tags auth
// @Produce json
// @Param email query string true "User email"
// @Success 200 {object} TokenResponse
// @Failure 403 {object} TokenResponse
// @Router /jwt [get]
func (h *AuthHandler) IssueToken(c *fiber.Ctx) error {
	email := c.Query("email")

	_, err := h.users.FindByEmail(c.UserContext(), email)
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(fiber.StatusForbidden).JSON(TokenResponse{AccessToken: ""})
	}
	if err != nil {
		return err
	}

	token, err := utils.GenerateJWT(email, h.config)
	if err != nil {
		return err
	}
	return c.JSON(TokenResponse{AccessToken: token})
}

// @Summary Check seller role
// @Tags auth
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} IsSellerResponse
// @Router /users/seller/{email} [get]
func (h *AuthHandler) IsSeller(c *fiber.Ctx) error {
	is, err := h.hasRole(c, models.RoleSeller)
	if err != nil {
		return err
	}
	return c.JSON(IsSellerResponse{IsSeller: is})
}

// @Summary Check buyer role
// @Tags auth
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} IsBuyerResponse
// @Router /users/buyer/{email} [get]
func (h *AuthHandler) IsBuyer(c *fiber.Ctx) error {
	is, err := h.hasRole(c, models.RoleBuyer)
	if err != nil {
		return err
	}
	return c.JSON(IsBuyerResponse{IsBuyer: is})
}

// @Summary Check admin role
// @Tags auth
// @Produce json
// @Param email path string true "User email"
// @Success 200 {object} IsAdminResponse
// @Router /users/admin/{email} [get]
func (h *AuthHandler) IsAdmin(c *fiber.Ctx) error {
	is, err := h.hasRole(c, models.RoleAdmin)
	if err != nil {
		return err
	}
	return c.JSON(IsAdminResponse{IsAdmin: is})
}

func (h *AuthHandler) hasRole(c *fiber.Ctx, role models.UserRole) (bool, error) {
	resolved, err := h.roles.Resolve(c.UserContext(), c.Params("email"))
	if err != nil {
		return false, err
	}
	return resolved == role, nil
}

package middleware

import (
	"context"
	"errors"

	"seller-marketplace/shared/config"
	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/utils"

	"github.com/gofiber/fiber/v2"
)

// LocalEmail is the Locals key holding the verified caller email.
const LocalEmail = "email"

const (
	msgUnauthorized = "unauthorized access"
	msgForbidden    = "forbidden access"
)

// AuthMiddleware verifies the bearer token. A missing header is 401; a token
// that fails verification is 403.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return utils.UnauthorizedResponse(c, msgUnauthorized)
		}

		token := utils.ExtractTokenFromHeader(authHeader)
		claims, err := utils.ValidateJWT(token, cfg)
		if err != nil {
			return utils.ForbiddenResponse(c, msgForbidden)
		}

		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

// IdentityEmail returns the email stored by AuthMiddleware, or "".
func IdentityEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(LocalEmail).(string)
	return email
}

// RoleResolver reads a user's role from the store on every call.
type RoleResolver struct {
	users store.Users
}

func NewRoleResolver(users store.Users) *RoleResolver {
	return &RoleResolver{users: users}
}

// Resolve returns the empty role for an unknown email.
func (r *RoleResolver) Resolve(ctx context.Context, email string) (models.UserRole, error) {
	user, err := r.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

// RoleMiddleware must run after AuthMiddleware.
func (r *RoleResolver) RoleMiddleware(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := IdentityEmail(c)
		if email == "" {
			return utils.UnauthorizedResponse(c, msgUnauthorized)
		}

		role, err := r.Resolve(c.UserContext(), email)
		if err != nil {
			return err
		}

		for _, allowed := range allowedRoles {
			if role != "" && role == allowed {
				return c.Next()
			}
		}

		return utils.ForbiddenResponse(c, msgForbidden)
	}
}

func (r *RoleResolver) Seller() fiber.Handler { return r.RoleMiddleware(models.RoleSeller) }
func (r *RoleResolver) Buyer() fiber.Handler  { return r.RoleMiddleware(models.RoleBuyer) }
func (r *RoleResolver) Admin() fiber.Handler  { return r.RoleMiddleware(models.RoleAdmin) }

// SelfQuery rejects requests whose query parameter differs from the caller's
// verified email.
func SelfQuery(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := IdentityEmail(c)
		if email == "" {
			return utils.UnauthorizedResponse(c, msgUnauthorized)
		}
		if c.Query(param) != email {
			return utils.ForbiddenResponse(c, msgForbidden)
		}
		return c.Next()
	}
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"seller-marketplace/shared/config"
	"seller-marketplace/shared/models"
	"seller-marketplace/shared/store"
	"seller-marketplace/shared/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	store.Users
	roles   map[string]models.UserRole
	lookups int
	err     error
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.roles[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &models.User{Email: email, Role: role}, nil
}

var testCfg = &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 24, Issuer: "test"}}

func newTestApp(users *fakeUsers) *fiber.App {
	app := fiber.New()
	resolver := NewRoleResolver(users)
	auth := AuthMiddleware(testCfg)
	ok := func(c *fiber.Ctx) error { return c.SendString(IdentityEmail(c)) }

	app.Get("/seller", auth, resolver.Seller(), ok)
	app.Get("/buyer", auth, resolver.Buyer(), ok)
	app.Get("/admin", auth, resolver.Admin(), ok)
	app.Get("/mine", auth, resolver.Buyer(), SelfQuery("email"), ok)
	app.Get("/ungated", resolver.Admin(), ok)
	return app
}

func bearer(t *testing.T, email string) string {
	token, err := utils.GenerateJWT(email, testCfg)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(t *testing.T, app *fiber.App, path, auth string) (int, utils.Response) {
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body utils.Response
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestAuthMiddleware(t *testing.T) {
	users := &fakeUsers{roles: map[string]models.UserRole{"s@example.com": models.RoleSeller}}
	app := newTestApp(users)

	status, body := do(t, app, "/seller", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized access", body.Message)
	assert.False(t, body.Success)

	for _, header := range []string{"Bearer", "Bearer garbage", "Basic abc.def.ghi"} {
		status, body = do(t, app, "/seller", header)
		assert.Equal(t, fiber.StatusForbidden, status, header)
		assert.Equal(t, "forbidden access", body.Message)
	}
	assert.Zero(t, users.lookups, "no role lookup before the token is valid")

	status, _ = do(t, app, "/seller", bearer(t, "s@example.com"))
	assert.Equal(t, fiber.StatusOK, status)
}

func TestRoleGates(t *testing.T) {
	users := &fakeUsers{roles: map[string]models.UserRole{
		"s@example.com": models.RoleSeller,
		"b@example.com": models.RoleBuyer,
		"a@example.com": models.RoleAdmin,
	}}
	app := newTestApp(users)

	tests := []struct {
		path  string
		email string
		want  int
	}{
		{"/seller", "s@example.com", fiber.StatusOK},
		{"/seller", "b@example.com", fiber.StatusForbidden},
		{"/buyer", "b@example.com", fiber.StatusOK},
		{"/buyer", "a@example.com", fiber.StatusForbidden},
		{"/admin", "a@example.com", fiber.StatusOK},
		{"/admin", "s@example.com", fiber.StatusForbidden},
		{"/admin", "ghost@example.com", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.path+" "+tt.email, func(t *testing.T) {
			status, _ := do(t, app, tt.path, bearer(t, tt.email))
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestRoleIsResolvedEveryRequest(t *testing.T) {
	users := &fakeUsers{roles: map[string]models.UserRole{"u@example.com": models.RoleBuyer}}
	app := newTestApp(users)
	auth := bearer(t, "u@example.com")

	status, _ := do(t, app, "/admin", auth)
	assert.Equal(t, fiber.StatusForbidden, status)

	users.roles["u@example.com"] = models.RoleAdmin
	status, _ = do(t, app, "/admin", auth)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 2, users.lookups)
}

func TestRoleGateWithoutIdentity(t *testing.T) {
	app := newTestApp(&fakeUsers{})

	status, _ := do(t, app, "/ungated", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestRoleGateStoreError(t *testing.T) {
	app := newTestApp(&fakeUsers{err: errors.New("connection reset")})

	status, _ := do(t, app, "/admin", bearer(t, "a@example.com"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestSelfQuery(t *testing.T) {
	users := &fakeUsers{roles: map[string]models.UserRole{"b@example.com": models.RoleBuyer}}
	app := newTestApp(users)
	auth := bearer(t, "b@example.com")

	status, _ := do(t, app, "/mine?email=b@example.com", auth)
	assert.Equal(t, fiber.StatusOK, status)

	status, body := do(t, app, "/mine?email=other@example.com", auth)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "forbidden access", body.Message)

	status, _ = do(t, app, "/mine", auth)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestResolveUnknownUser(t *testing.T) {
	r := NewRoleResolver(&fakeUsers{roles: map[string]models.UserRole{}})

	role, err := r.Resolve(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, role)
}

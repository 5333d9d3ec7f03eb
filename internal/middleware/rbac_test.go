package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timebank-api/internal/models"
)

func withPrincipal(email, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if email != "" {
			c.Locals(LocalUserEmail, email)
		}
		if role != "" {
			c.Locals(LocalUserRole, role)
		}
		return c.Next()
	}
}

func TestRequireRoleAllowsAuthorizedRoles(t *testing.T) {
	app := fiber.New()
	app.Use(withPrincipal("ana@example.com", "Mentor"))
	app.Use(RequireRole(models.RoleMentor))
	app.Get("/points", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/points", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsUnauthorizedRoles(t *testing.T) {
	app := fiber.New()
	app.Use(withPrincipal("sam@example.com", "student"))
	app.Use(RequireRole(models.RoleMentor))
	app.Get("/points", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/points", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleRequiresPrincipal(t *testing.T) {
	app := fiber.New()
	app.Use(RequireRole(models.RoleMentor))
	app.Get("/points", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/points", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoleRejectsUnknownRoleClaim(t *testing.T) {
	app := fiber.New()
	app.Use(withPrincipal("root@example.com", "admin"))
	app.Use(RequireRole(models.RoleMentor, models.RoleStudent))
	app.Get("/points", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/points", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

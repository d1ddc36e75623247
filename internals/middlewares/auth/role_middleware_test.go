package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RonaldMark17/agridata-backend/internals/constants"
)

func roleApp(role string, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if role != "" {
			c.Locals("userRole", role)
		}
		return c.Next()
	})
	app.Post("/guarded", OnlyRoles("Only admin accounts may access this.", allowed...),
		func(c *fiber.Ctx) error { return c.SendString("through") })
	return app
}

func hit(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/guarded", nil), -1)
	require.NoError(t, err)
	return resp
}

func TestOnlyRolesAllowsListedRole(t *testing.T) {
	for _, role := range constants.EncoderAndAbove {
		app := roleApp(role, constants.EncoderAndAbove...)
		assert.Equal(t, fiber.StatusOK, hit(t, app).StatusCode, role)
	}
}

func TestOnlyRolesForbidsViewer(t *testing.T) {
	app := roleApp(constants.RoleViewer, constants.EncoderAndAbove...)
	assert.Equal(t, fiber.StatusForbidden, hit(t, app).StatusCode)
}

func TestOnlyRolesWithoutIdentityIsUnauthorized(t *testing.T) {
	app := roleApp("", constants.AdminOnly...)
	assert.Equal(t, fiber.StatusUnauthorized, hit(t, app).StatusCode)
}

package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/utils"
)

// RequireRole admits principals whose token role is one of roles. A missing
// principal is 401, a principal of another role is 403.
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		if UserEmail(c) == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		role, ok := roleFromLocals(c)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}
		if _, ok := allowed[role]; !ok {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// UserRole returns the authenticated principal's role, or "" when absent.
func UserRole(c *fiber.Ctx) models.Role {
	role, _ := roleFromLocals(c)
	return role
}

func roleFromLocals(c *fiber.Ctx) (models.Role, bool) {
	var raw string
	switch v := c.Locals(LocalUserRole).(type) {
	case models.Role:
		raw = v.String()
	case string:
		raw = v
	default:
		return "", false
	}

	role, err := models.ParseRole(raw)
	if err != nil {
		return "", false
	}
	return role, true
}

package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/timebank-api/internal/models"
	"github.com/noah-isme/timebank-api/internal/utils"
)

// Locals keys populated by JWTProtected.
const (
	LocalUserEmail = "user_email"
	LocalUserRole  = "user_role"
)

// JWTProtected returns a middleware that validates HS256 bearer tokens and
// stores the principal's email and role in the request locals.
func JWTProtected(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get(fiber.HeaderAuthorization)
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "authorization header missing")
		}

		const bearer = "Bearer "
		if len(authorization) < len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		email, _ := claims["sub"].(string)
		email = models.NormalizeEmail(email)
		if email == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		rawRole, _ := claims["role"].(string)
		role, err := models.ParseRole(rawRole)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		c.Locals(LocalUserEmail, email)
		c.Locals(LocalUserRole, role)

		return c.Next()
	}
}

// UserEmail returns the authenticated principal's email, if any.
func UserEmail(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalUserEmail).(string); ok {
		return v
	}
	return ""
}

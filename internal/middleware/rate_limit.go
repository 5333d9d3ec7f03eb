package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/noah-isme/timebank-api/internal/utils"
)

// RateLimit creates a limiter keyed by the authenticated email, falling back
// to the client IP for anonymous routes such as login.
func RateLimit(identifier string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			key := strings.TrimSpace(UserEmail(c))
			if key == "" {
				key = c.IP()
			}
			return fmt.Sprintf("%s:%s", identifier, key)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, fiber.StatusTooManyRequests, "too many requests")
		},
	})
}

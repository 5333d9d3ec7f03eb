package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderCorrelationID carries the request correlation identifier.
const HeaderCorrelationID = "X-Correlation-ID"

type correlationIDKey struct{}

// CorrelationID tags every request with an identifier, reusing the caller's
// X-Correlation-ID or X-Request-ID when present.
func CorrelationID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		incoming := strings.TrimSpace(c.Get(HeaderCorrelationID))
		if incoming == "" {
			incoming = strings.TrimSpace(c.Get(fiber.HeaderXRequestID))
		}
		if incoming == "" {
			incoming = uuid.NewString()
		}

		c.Locals("correlation_id", incoming)
		c.Set(HeaderCorrelationID, incoming)
		c.SetUserContext(context.WithValue(c.UserContext(), correlationIDKey{}, incoming))

		return c.Next()
	}
}

// CorrelationIDFromContext extracts the correlation identifier from ctx.
func CorrelationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GetCorrelationID returns the correlation identifier bound to the active request.
func GetCorrelationID(c *fiber.Ctx) string {
	if c == nil {
		return ""
	}
	if id, ok := c.Locals("correlation_id").(string); ok {
		return id
	}
	return CorrelationIDFromContext(c.UserContext())
}

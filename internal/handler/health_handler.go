package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/timebank-api/internal/config"
	"github.com/noah-isme/timebank-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string            `json:"status"`
	Timestamp   time.Time         `json:"timestamp"`
	Service     string            `json:"service"`
	Environment string            `json:"environment"`
	Checks      map[string]string `json:"checks"`
}

// HealthProbe reports whether a dependency is reachable.
type HealthProbe func(ctx context.Context) error

// HealthCheck returns a handler that reports service health. Each probe is
// run with a short timeout; any failure turns the response into a 503.
func HealthCheck(cfg config.Config, probes map[string]HealthProbe) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Checks:      make(map[string]string, len(probes)),
		}

		for name, probe := range probes {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			err := probe(ctx)
			cancel()
			if err != nil {
				payload.Status = "degraded"
				payload.Checks[name] = err.Error()
				continue
			}
			payload.Checks[name] = "ok"
		}

		if payload.Status != "ok" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(utils.APIResponse{
				Success: false,
				Data:    payload,
				Message: "service degraded",
			})
		}
		return utils.SendSuccess(c, "service healthy", payload)
	}
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/service"
	"github.com/noah-isme/timebank-api/internal/utils"
)

// SeedHandler exposes tooling endpoints for seeding the rewards catalog.
type SeedHandler struct {
	service service.RewardService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.RewardService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/rewards", h.rewards)
}

type seedRewardsRequest struct {
	Items []dto.RewardSeedItem `json:"items"`
}

func (h *SeedHandler) rewards(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")
	var payload seedRewardsRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	affected, err := h.service.SeedRewards(c.UserContext(), token, payload.Items)
	if err != nil {
		return writeServiceError(c, h.logger, err, "seed operation failed")
	}

	return utils.SendSuccess(c, "rewards seeded", fiber.Map{"affected": affected})
}

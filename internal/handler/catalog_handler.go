package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/service"
	"github.com/noah-isme/timebank-api/internal/utils"
)

// LeaderboardHandler serves the mentor ranking.
type LeaderboardHandler struct {
	service service.LeaderboardService
	logger  zerolog.Logger
}

// NewLeaderboardHandler constructs the handler.
func NewLeaderboardHandler(service service.LeaderboardService, logger zerolog.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		service: service,
		logger:  logger.With().Str("component", "leaderboard_handler").Logger(),
	}
}

// Register wires leaderboard routes.
func (h *LeaderboardHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *LeaderboardHandler) list(c *fiber.Ctx) error {
	entries, err := h.service.TopMentors(c.UserContext())
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to load leaderboard")
	}

	return utils.SendSuccess(c, "leaderboard retrieved", entries)
}

// RewardHandler serves the rewards catalog.
type RewardHandler struct {
	service service.RewardService
	logger  zerolog.Logger
}

// NewRewardHandler constructs the handler.
func NewRewardHandler(service service.RewardService, logger zerolog.Logger) *RewardHandler {
	return &RewardHandler{
		service: service,
		logger:  logger.With().Str("component", "reward_handler").Logger(),
	}
}

// Register wires catalog routes.
func (h *RewardHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *RewardHandler) list(c *fiber.Ctx) error {
	rewards, err := h.service.ListRewards(c.UserContext())
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to list rewards")
	}

	return utils.SendSuccess(c, "rewards retrieved", rewards)
}

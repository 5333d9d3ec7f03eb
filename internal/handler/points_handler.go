package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/service"
	"github.com/noah-isme/timebank-api/internal/utils"
)

// PointsHandler exposes mentor balances and redemptions.
type PointsHandler struct {
	service service.PointsService
	logger  zerolog.Logger
}

// NewPointsHandler constructs the handler.
func NewPointsHandler(service service.PointsService, logger zerolog.Logger) *PointsHandler {
	return &PointsHandler{
		service: service,
		logger:  logger.With().Str("component", "points_handler").Logger(),
	}
}

// Register wires points routes.
func (h *PointsHandler) Register(router fiber.Router) {
	router.Get("/points", h.balance)
	router.Post("/redemptions", h.redeem)
	router.Get("/redemptions", h.history)
}

func (h *PointsHandler) balance(c *fiber.Ctx) error {
	balance, err := h.service.Balance(c.UserContext(), userEmailFromContext(c))
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to load balance")
	}

	return utils.SendSuccess(c, "balance retrieved", balance)
}

func (h *PointsHandler) redeem(c *fiber.Ctx) error {
	var payload dto.RedeemRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	redemption, err := h.service.Redeem(c.UserContext(), userEmailFromContext(c), payload)
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to redeem reward")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "reward redeemed", redemption)
}

func (h *PointsHandler) history(c *fiber.Ctx) error {
	redemptions, err := h.service.ListRedemptions(c.UserContext(), userEmailFromContext(c))
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to list redemptions")
	}

	return utils.SendSuccess(c, "redemptions retrieved", redemptions)
}

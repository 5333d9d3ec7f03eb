package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/middleware"
	"github.com/noah-isme/timebank-api/internal/service"
	"github.com/noah-isme/timebank-api/internal/utils"
)

func userEmailFromContext(c *fiber.Ctx) string {
	return middleware.UserEmail(c)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// writeServiceError maps service errors onto HTTP statuses. Unexpected
// errors are logged and reported with the fallback message.
func writeServiceError(c *fiber.Ctx, logger zerolog.Logger, err error, fallback string) error {
	switch {
	case service.IsValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, validationMessage(err))
	case errors.Is(err, service.ErrInvalidPeriod):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateEmail):
		return utils.SendError(c, fiber.StatusConflict, "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrPrincipalNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "account not found")
	case errors.Is(err, service.ErrRewardNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "reward not found")
	case errors.Is(err, service.ErrInsufficientPoints):
		return utils.SendError(c, fiber.StatusUnprocessableEntity, "insufficient points")
	case errors.Is(err, service.ErrSeedDisabled):
		return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
	case errors.Is(err, service.ErrSeedUnauthorized):
		return utils.SendError(c, fiber.StatusForbidden, "invalid token")
	default:
		requestLogger(logger, c).Error().Err(err).Msg(fallback)
		return utils.SendError(c, fiber.StatusInternalServerError, fallback)
	}
}

func validationMessage(err error) string {
	message := err.Error()
	if prefix := service.ErrValidation.Error() + ": "; strings.HasPrefix(message, prefix) {
		return strings.TrimPrefix(message, prefix)
	}
	return message
}

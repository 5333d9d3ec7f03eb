package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/service"
	"github.com/noah-isme/timebank-api/internal/utils"
)

// ActivityHandler exposes the mentor and student activity ledgers.
type ActivityHandler struct {
	service service.LedgerService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.LedgerService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// RegisterMentor wires mentor ledger routes.
func (h *ActivityHandler) RegisterMentor(router fiber.Router) {
	router.Post("/activities", h.logMentor)
	router.Get("/activities", h.listMentor)
}

// RegisterStudent wires student ledger routes.
func (h *ActivityHandler) RegisterStudent(router fiber.Router) {
	router.Post("/activities", h.logStudent)
	router.Get("/activities", h.listStudent)
}

func (h *ActivityHandler) logMentor(c *fiber.Ctx) error {
	var payload dto.MentorActivityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	activity, err := h.service.LogMentorActivity(c.UserContext(), userEmailFromContext(c), payload)
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to log activity")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity logged", activity)
}

func (h *ActivityHandler) listMentor(c *fiber.Ctx) error {
	activities, err := h.service.ListMentorActivities(c.UserContext(), userEmailFromContext(c))
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to list activities")
	}

	return utils.SendSuccess(c, "activities retrieved", activities)
}

func (h *ActivityHandler) logStudent(c *fiber.Ctx) error {
	var payload dto.StudentActivityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	activity, err := h.service.LogStudentActivity(c.UserContext(), userEmailFromContext(c), payload)
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to log activity")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity logged", activity)
}

func (h *ActivityHandler) listStudent(c *fiber.Ctx) error {
	activities, err := h.service.ListStudentActivities(c.UserContext(), userEmailFromContext(c))
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to list activities")
	}

	return utils.SendSuccess(c, "activities retrieved", activities)
}

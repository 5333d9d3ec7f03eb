package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/dto"
	"github.com/noah-isme/timebank-api/internal/middleware"
	"github.com/noah-isme/timebank-api/internal/service"
	"github.com/noah-isme/timebank-api/internal/utils"
)

// AccountHandler exposes registration, login and the current profile.
type AccountHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(service service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger.With().Str("component", "account_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AccountHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterProfile wires the current-principal route behind the given guards.
func (h *AccountHandler) RegisterProfile(router fiber.Router, guards ...fiber.Handler) {
	handlers := append(append([]fiber.Handler{}, guards...), h.profile)
	router.Get("/me", handlers...)
}

func (h *AccountHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	principal, err := h.service.Register(c.UserContext(), payload)
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to register")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration successful", principal)
}

func (h *AccountHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	auth, err := h.service.Authenticate(c.UserContext(), payload)
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to login")
	}

	return utils.SendSuccess(c, "login successful", auth)
}

func (h *AccountHandler) profile(c *fiber.Ctx) error {
	role := middleware.UserRole(c)
	if role == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	principal, err := h.service.Profile(c.UserContext(), role, userEmailFromContext(c))
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to load profile")
	}

	return utils.SendSuccess(c, "profile retrieved", principal)
}

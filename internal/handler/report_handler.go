package handler

import (
	"bytes"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/timebank-api/internal/service"
	"github.com/noah-isme/timebank-api/internal/utils"
)

const csvContentType = "text/csv; charset=utf-8"

// ReportHandler serves mentor CSV reports.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/reports/:period", h.download)
}

func (h *ReportHandler) download(c *fiber.Ctx) error {
	report, err := h.service.Generate(c.UserContext(), userEmailFromContext(c), c.Params("period"))
	if err != nil {
		return writeServiceError(c, h.logger, err, "failed to generate report")
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf); err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to render report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to generate report")
	}

	return utils.SendAttachment(c, report.Filename(), csvContentType, buf.Bytes())
}

package handlers

import (
	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/domain"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	"github.com/augustpm/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service ports.ReportService
	logger  *logger.Logger
}

func NewReportHandler(service ports.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

func (h *ReportHandler) GetWorkload(c *fiber.Ctx) error {
	workload, err := h.service.Workload(c.Context())
	if err != nil {
		h.logger.Errorw("report_workload_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(workload)
}

func (h *ReportHandler) GetStandup(c *fiber.Ctx) error {
	standup, err := h.service.Standup(c.Context())
	if err != nil {
		h.logger.Errorw("report_standup_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(standup)
}

func (h *ReportHandler) GetAgents(c *fiber.Ctx) error {
	return c.JSON(domain.AllAgents())
}

package handlers

import (
	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	service ports.SyncService
	logger  *logger.Logger
}

func NewSyncHandler(service ports.SyncService, logger *logger.Logger) *SyncHandler {
	return &SyncHandler{service: service, logger: logger}
}

// Pull imports the remote board into the local store. Always 200: an
// unreachable board is reported as zero activity, not as a failure.
func (h *SyncHandler) Pull(c *fiber.Ctx) error {
	h.logger.Infow("sync_pull_request")
	return c.JSON(h.service.SyncFromRemote(c.Context()))
}

// Push sends every local task to the board. Repeated pushes create remote
// duplicates; that is the contract.
func (h *SyncHandler) Push(c *fiber.Ctx) error {
	h.logger.Infow("sync_push_request")
	return c.JSON(h.service.SyncToRemote(c.Context()))
}

func (h *SyncHandler) Status(c *fiber.Ctx) error {
	return c.JSON(h.service.SyncStatus(c.Context()))
}

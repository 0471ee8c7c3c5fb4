package handlers

import (
	"errors"

	"github.com/augustpm/backend/internal/core/ports"
	"github.com/augustpm/backend/internal/core/services"
	"github.com/augustpm/backend/internal/domain"
	"github.com/augustpm/backend/internal/infrastructure/logger"
	"github.com/augustpm/backend/internal/transport/http/dto"
	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	service ports.TaskService
	logger  *logger.Logger
}

func NewTaskHandler(service ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	if details := req.Validate(); len(details) > 0 {
		h.logger.Warnw("task_create_validation_failed", "details", details)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: details,
		})
	}

	task, err := h.service.Create(c.Context(), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Agent:       req.Agent,
		Priority:    req.GetPriority(),
		ParentTask:  req.ParentTask,
		Tags:        req.Tags,
	})
	if err != nil {
		h.logger.Errorw("task_create_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) GetTasks(c *fiber.Ctx) error {
	if agent := c.Query("agent"); agent != "" {
		tasks, err := h.service.ListByAgent(c.Context(), agent)
		if err != nil {
			h.logger.Errorw("tasks_list_by_agent_failed", "agent", agent, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(dto.TasksToResponse(tasks))
	}

	if stateParam := c.Query("state"); stateParam != "" {
		state, err := domain.ParseTaskState(stateParam)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		tasks, err := h.service.ListByState(c.Context(), state)
		if err != nil {
			h.logger.Errorw("tasks_list_by_state_failed", "state", state, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(dto.TasksToResponse(tasks))
	}

	tasks, err := h.service.ListAll(c.Context())
	if err != nil {
		h.logger.Errorw("tasks_list_failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.TasksToResponse(tasks))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id := c.Params("id")
	task, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task does not exist",
			})
		}
		h.logger.Errorw("task_get_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) UpdateTaskState(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateStateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
		})
	}

	state, err := domain.ParseTaskState(req.State)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	task, err := h.service.UpdateState(c.Context(), id, state)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "task does not exist",
			})
		}
		h.logger.Errorw("task_update_state_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.TaskToResponse(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	// Idempotent: deleting an unknown id is a successful no-op.
	if err := h.service.Delete(c.Context(), id); err != nil {
		h.logger.Errorw("task_delete_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *TaskHandler) GetTaskHistory(c *fiber.Ctx) error {
	id := c.Params("id")
	entries, err := h.service.History(c.Context(), id)
	if err != nil {
		h.logger.Errorw("task_history_failed", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(entries)
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/taskapi/backend/internal/core/ports"
	"github.com/taskapi/backend/internal/core/services"
	"github.com/taskapi/backend/internal/domain"
	"github.com/taskapi/backend/internal/infrastructure/logger"
	"github.com/taskapi/backend/internal/transport/http/dto"
)

type TaskHandler struct {
	service ports.TaskService
	logger  *logger.Logger
}

func NewTaskHandler(service ports.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, logger: logger}
}

func (h *TaskHandler) GetTasks(c *fiber.Ctx) error {
	tasks, err := h.service.ListTasks(c.UserContext())
	if err != nil {
		return h.fail(c, "task_list_failed", "", err)
	}

	h.logger.Debugw("task_list_success", "count", len(tasks))
	return c.JSON(dto.OK(tasks))
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	id := c.Params("id")
	task, err := h.service.GetTask(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "task_get_failed", id, err)
	}

	return c.JSON(dto.OK(task))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := parseBody(c, &req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	task, err := h.service.CreateTask(c.UserContext(), req.ToPatch())
	if err != nil {
		return h.fail(c, "task_create_failed", "", err)
	}

	h.logger.Infow("task_create_success", "id", task.ID)
	return c.Status(fiber.StatusCreated).JSON(dto.OK(task))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.TaskRequest
	if err := parseBody(c, &req); err != nil {
		h.logger.Warnw("task_update_body_parse_failed", "id", id, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("invalid request body"))
	}

	task, err := h.service.UpdateTask(c.UserContext(), id, req.ToPatch())
	if err != nil {
		return h.fail(c, "task_update_failed", id, err)
	}

	h.logger.Infow("task_update_success", "id", task.ID)
	return c.JSON(dto.OK(task))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteTask(c.UserContext(), id); err != nil {
		return h.fail(c, "task_delete_failed", id, err)
	}

	h.logger.Infow("task_delete_success", "id", id)
	return c.JSON(dto.Response{Success: true})
}

// fail writes the error envelope. Store failures are logged with detail but
// the client only sees a generic message.
func (h *TaskHandler) fail(c *fiber.Ctx, event, id string, err error) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		h.logger.Warnw(event, "id", id, "reason", "validation", "details", verr.Details())
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("validation failed", verr.Details()...))
	case errors.Is(err, services.ErrTaskNotFound):
		h.logger.Warnw(event, "id", id, "reason", "not_found")
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("task not found"))
	}

	h.logger.Errorw(event, "id", id, "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail("internal server error"))
}

// parseBody treats an empty body as an empty object.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.BodyParser(out)
}

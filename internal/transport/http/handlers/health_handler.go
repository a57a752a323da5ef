package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/taskapi/backend/internal/infrastructure/logger"
)

// Pinger is satisfied by the persistence handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	logger *logger.Logger
}

func NewHealthHandler(store Pinger, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.store.Ping(c.UserContext()); err != nil {
		h.logger.Warnw("health_store_unreachable", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

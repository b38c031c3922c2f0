package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/auraflux/auraflux/internal/shortlink"
)

// HealthHandler provides health check endpoints
type HealthHandler struct {
	store  *shortlink.Store
	logger *zap.Logger
}

// NewHealthHandler creates a health handler
func NewHealthHandler(store *shortlink.Store, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		logger: logger,
	}
}

// BasicHealth returns simple healthy status (for load balancers)
func (h *HealthHandler) BasicHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// DetailedHealth adds short-link store occupancy to the health body.
func (h *HealthHandler) DetailedHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"short_links": h.store.Snapshot(),
	})
}

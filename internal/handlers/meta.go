package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auraflux/auraflux/internal/platform"
)

// MetaHandler serves the root status endpoint and the platform
// registry.
type MetaHandler struct {
	statusMessage string
}

// NewMetaHandler creates a meta handler.
func NewMetaHandler(statusMessage string) *MetaHandler {
	return &MetaHandler{statusMessage: statusMessage}
}

// Root returns the API status banner.
func (h *MetaHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": h.statusMessage,
	})
}

// Supported returns the platform registry verbatim.
func (h *MetaHandler) Supported(c *fiber.Ctx) error {
	return c.JSON(platform.Registry)
}

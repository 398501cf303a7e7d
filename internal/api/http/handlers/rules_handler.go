package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lodge-registration/internal/rules"
)

// RulesHandler serves the lodge rules shown during registration.
type RulesHandler struct{}

// NewRulesHandler returns a new handler instance.
func NewRulesHandler() *RulesHandler {
	return &RulesHandler{}
}

// Get handles GET /rules.
func (h *RulesHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": rules.Lodge})
}

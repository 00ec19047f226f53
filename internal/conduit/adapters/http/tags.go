package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// ListTags обрабатывает GET /api/tags.
func (h *Handler) ListTags(ctx fiber.Ctx) error {
	tags, err := h.tags.List(ctx.Context())
	if err != nil {
		return fmt.Errorf("listing tags: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(TagsResponse{Tags: tags})
}

package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"conduit/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerGetProfile = "profiles handler: get profile"
	LogHandlerFollow     = "profiles handler: follow"
	LogHandlerUnfollow   = "profiles handler: unfollow"
)

// GetProfile обрабатывает GET /api/profiles/:username.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerGetProfile)

	profile, err := h.profiles.Get(requestCtx, viewerID(ctx), ctx.Params("username"))
	if err != nil {
		return fmt.Errorf("getting profile: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(ProfileResponse{Profile: newProfileDTO(profile)})
}

// Follow обрабатывает POST /api/profiles/:username/follow.
func (h *Handler) Follow(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerFollow)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	profile, err := h.profiles.Follow(requestCtx, s.UserID, ctx.Params("username"))
	if err != nil {
		return fmt.Errorf("following profile: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(ProfileResponse{Profile: newProfileDTO(profile)})
}

// Unfollow обрабатывает DELETE /api/profiles/:username/follow.
func (h *Handler) Unfollow(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUnfollow)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	profile, err := h.profiles.Unfollow(requestCtx, s.UserID, ctx.Params("username"))
	if err != nil {
		return fmt.Errorf("unfollowing profile: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(ProfileResponse{Profile: newProfileDTO(profile)})
}

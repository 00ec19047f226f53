package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"conduit/pkg/logger"
	"conduit/pkg/validation"
)

// Константы для логирования.
const (
	LogHandlerRegister    = "users handler: register"
	LogHandlerLogin       = "users handler: login"
	LogHandlerCurrentUser = "users handler: current user"
	LogHandlerUpdateUser  = "users handler: update user"
)

// Register обрабатывает POST /api/users.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerRegister)

	raw, err := readBody(ctx)
	if err != nil {
		return err
	}
	req := validation.ValidateUserRegistration(raw)
	if err := req.Err(); err != nil {
		return err
	}

	user, err := h.users.Register(requestCtx, req.Data.User)
	if err != nil {
		return fmt.Errorf("registering user: %w", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(newUserResponse(user))
}

// Login обрабатывает POST /api/users/login.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogin)

	raw, err := readBody(ctx)
	if err != nil {
		return err
	}
	req := validation.ValidateUserLogin(raw)
	if err := req.Err(); err != nil {
		return err
	}

	user, err := h.users.Login(requestCtx, req.Data.User)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(newUserResponse(user))
}

// CurrentUser обрабатывает GET /api/user.
func (h *Handler) CurrentUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCurrentUser)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	user, err := h.users.Current(requestCtx, s.UserID, s.Token)
	if err != nil {
		return fmt.Errorf("loading current user: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(newUserResponse(user))
}

// UpdateUser обрабатывает PUT /api/user.
func (h *Handler) UpdateUser(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdateUser)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	raw, err := readBody(ctx)
	if err != nil {
		return err
	}
	req := validation.ValidateUserUpdate(raw)
	if err := req.Err(); err != nil {
		return err
	}

	user, err := h.users.Update(requestCtx, s.UserID, req.Data.User)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return ctx.Status(fiber.StatusOK).JSON(newUserResponse(user))
}

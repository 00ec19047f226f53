package http

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"conduit/pkg/logger"
	"conduit/pkg/validation"
)

// Константы для логирования.
const (
	LogHandlerListComments  = "comments handler: list"
	LogHandlerAddComment    = "comments handler: add"
	LogHandlerDeleteComment = "comments handler: delete"
)

// ListComments обрабатывает GET /api/articles/:slug/comments.
func (h *Handler) ListComments(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerListComments)

	query := validation.ValidateGetCommentsQuery(ctx.Queries())
	if err := query.Err(); err != nil {
		return err
	}

	comments, err := h.comments.List(requestCtx, viewerID(ctx), ctx.Params("slug"), query.Data)
	if err != nil {
		return fmt.Errorf("listing comments: %w", err)
	}

	resp := CommentsResponse{Comments: make([]CommentDTO, 0, len(comments))}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, newCommentDTO(c))
	}
	return ctx.Status(fiber.StatusOK).JSON(resp)
}

// AddComment обрабатывает POST /api/articles/:slug/comments.
func (h *Handler) AddComment(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerAddComment)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	raw, err := readBody(ctx)
	if err != nil {
		return err
	}
	req := validation.ValidateAddComment(raw)
	if err := req.Err(); err != nil {
		return err
	}

	comment, err := h.comments.Add(requestCtx, s.UserID, ctx.Params("slug"), req.Data.Comment)
	if err != nil {
		return fmt.Errorf("adding comment: %w", err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(CommentResponse{Comment: newCommentDTO(comment)})
}

// DeleteComment обрабатывает DELETE /api/articles/:slug/comments/:id.
func (h *Handler) DeleteComment(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDeleteComment)

	s, err := currentSession(ctx)
	if err != nil {
		return err
	}

	id := validation.Parse(validation.IDSchema, ctx.Params("id"))
	if err := id.Err(); err != nil {
		return err
	}

	if err := h.comments.Delete(requestCtx, s.UserID, ctx.Params("slug"), id.Data); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

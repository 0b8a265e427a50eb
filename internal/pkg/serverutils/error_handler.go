// FILE: internal/pkg/serverutils/error_handler.go
package serverutils

import (
	"errors"

	"ai-canvas-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses so the
// controllers can just return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, service.ErrChatNotFound),
			errors.Is(err, service.ErrArtifactNotFound):
			status = fiber.StatusNotFound
		case errors.Is(err, service.ErrChatIdRequired),
			errors.Is(err, service.ErrInvalidArtifactType),
			errors.Is(err, service.ErrInvalidRole):
			status = fiber.StatusBadRequest
		case errors.Is(err, service.ErrLastChat):
			status = fiber.StatusConflict
		case errors.Is(err, service.ErrNoSession):
			status = fiber.StatusUnauthorized
		case errors.Is(err, service.ErrRemoteNotConfigured):
			status = fiber.StatusServiceUnavailable
		}

		return ctx.Status(status).JSON(fiber.Map{
			"success": false,
			"message": err.Error(),
		})
	}
}

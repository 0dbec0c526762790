package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/mindshield/mindshield-backend/internal/apperror"
	"github.com/mindshield/mindshield-backend/internal/dto"
)

// fail maps service errors to HTTP responses. apperror kinds carry their own
// status; anything else is a 500 with a generic message.
func fail(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status()).JSON(dto.ErrorResponse{
			Error: true, Message: appErr.Message,
		})
	}

	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/sang6174/ocean-chat-server-sub000/pkg/errors"
)

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeInvalidInput:
		return fiber.StatusBadRequest
	case apperrors.CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case apperrors.CodePermissionDenied:
		return fiber.StatusForbidden
	case apperrors.CodeNotFound:
		return fiber.StatusNotFound
	case apperrors.CodeConflict:
		return fiber.StatusConflict
	case apperrors.CodeFailedPrecondition:
		return fiber.StatusUnprocessableEntity
	case apperrors.CodeUnavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// fail maps a typed failure onto a status code; the message is the
// AppError's, never the raw cause.
func fail(c *fiber.Ctx, err error) error {
	code := apperrors.CodeOf(err)
	msg := err.Error()
	var app *apperrors.AppError
	if errors.As(err, &app) {
		msg = app.Message
	}
	if code == apperrors.CodeInternal || code == apperrors.CodeUnknown {
		msg = "internal server error"
	}
	return c.Status(statusFor(code)).JSON(fiber.Map{
		"error": msg,
		"code":  code,
	})
}

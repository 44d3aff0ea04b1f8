package serverutils

import (
	"errors"

	"shopping-chat-be/internal/pkg/logger"
	"shopping-chat-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts the error taxonomy into HTTP statuses:
// validation 400, timeout 504, upstream 502, anything else 500. Internal
// faults are logged with full context but surfaced generically.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorEnvelope{
				Success:   false,
				Code:      fiberErr.Code,
				Message:   fiberErr.Message,
				ErrorType: "http_error",
			})
		}

		kind := apperrors.KindOf(err)
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		switch kind {
		case apperrors.KindValidation:
			status = fiber.StatusBadRequest
			message = err.Error()
		case apperrors.KindTimeout:
			status = fiber.StatusGatewayTimeout
			message = "The assistant took too long to respond"
		case apperrors.KindUpstream:
			status = fiber.StatusBadGateway
			message = "The assistant backend is unavailable"
		}

		requestId, _ := ctx.Locals("request_id").(string)
		if kind == apperrors.KindInternal {
			log.Error("http", "unhandled request error", map[string]interface{}{
				"request_id": requestId,
				"path":       ctx.Path(),
				"method":     ctx.Method(),
				"error":      err.Error(),
			})
		} else {
			log.Warn("http", "request failed", map[string]interface{}{
				"request_id": requestId,
				"path":       ctx.Path(),
				"method":     ctx.Method(),
				"error_type": string(kind),
				"error":      err.Error(),
			})
		}

		return ctx.Status(status).JSON(ErrorEnvelope{
			Success:   false,
			Code:      status,
			Message:   message,
			ErrorType: string(kind),
		})
	}
}

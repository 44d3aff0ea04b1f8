package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIdHeader = "X-Request-Id"

// RequestIdMiddleware assigns every request a correlation id, honoring one
// supplied by the caller, and echoes it back on the response.
func RequestIdMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		requestId := ctx.Get(RequestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		ctx.Locals("request_id", requestId)
		ctx.Set(RequestIdHeader, requestId)
		return ctx.Next()
	}
}

package controller

import (
	"shopping-chat-be/internal/dto"
	"shopping-chat-be/internal/pkg/serverutils"
	"shopping-chat-be/internal/service"
	"shopping-chat-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Unified(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat")
	h.Post("unified", c.Unified)
	h.Get("status", c.Status)
}

// Unified accepts every chat query type and returns the page-specific
// schema directly (no envelope).
func (c *chatController) Unified(ctx *fiber.Ctx) error {
	var req dto.UnifiedChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request format, request must be a JSON object")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.ProcessUnified(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

// Status is a liveness probe; it never touches the LLM backend.
func (c *chatController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(c.chatService.Status())
}

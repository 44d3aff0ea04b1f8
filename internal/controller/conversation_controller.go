package controller

import (
	"time"

	"shopping-chat-be/internal/dto"
	"shopping-chat-be/internal/pkg/serverutils"
	"shopping-chat-be/internal/service"
	"shopping-chat-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

type IConversationController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Save(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
}

type conversationController struct {
	conversationService service.IConversationService
}

func NewConversationController(conversationService service.IConversationService) IConversationController {
	return &conversationController{
		conversationService: conversationService,
	}
}

func (c *conversationController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/chat")
	h.Use(jwtMiddleware)
	h.Post("conversations", c.Save)
	h.Get("conversations", c.List)
	h.Delete("conversations", c.Clear)
	h.Get("history/status", c.Status)
}

func (c *conversationController) Save(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	var req dto.SaveConversationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperrors.Validation("invalid request format, request must be a JSON object")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	saved, err := c.conversationService.Save(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.ConversationListResponse{
		Message: "Chat conversation saved successfully",
		Data:    []dto.ConversationDTO{*saved},
	})
}

func (c *conversationController) List(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	limit := int64(ctx.QueryInt("limit", 50))

	var before *time.Time
	if raw := ctx.Query("before"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperrors.Validation("'before' must be an RFC3339 timestamp")
		}
		before = &parsed
	}

	items, err := c.conversationService.List(ctx.Context(), userId, limit, before)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.ConversationListResponse{
		Message: "Chat conversations retrieved successfully",
		Data:    items,
	})
}

func (c *conversationController) Clear(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	deleted, err := c.conversationService.Clear(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.ConversationListResponse{
		Message: "Chat history cleared successfully",
		Count:   &deleted,
	})
}

func (c *conversationController) Status(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(string)

	status, err := c.conversationService.Status(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(status)
}

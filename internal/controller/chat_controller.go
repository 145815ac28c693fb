package controller

import (
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	ListSessions(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	ListMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	ListHistory(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
	auth        fiber.Handler
}

func NewChatController(chatService service.IChatService, auth fiber.Handler) IChatController {
	return &chatController{
		chatService: chatService,
		auth:        auth,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Get("/chat-sessions", c.auth, c.ListSessions)
	r.Post("/chat-sessions", c.auth, c.CreateSession)
	r.Get("/chat-sessions/:id/messages", c.auth, c.ListMessages)
	r.Post("/chat-sessions/:id/messages", c.auth, c.SendMessage)
	r.Post("/chat", c.auth, c.Chat)
	r.Get("/chat-history", c.auth, c.ListHistory)
}

func (c *chatController) ListSessions(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.ListSessions(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) CreateSession(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.CreateSession(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) ListMessages(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	sessionId, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.chatService.ListMessages(ctx.UserContext(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	sessionId, err := uuidParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.SendSessionMessageRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.SendMessage(ctx.UserContext(), userId, sessionId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatService.Chat(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *chatController) ListHistory(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.chatService.ListHistory(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

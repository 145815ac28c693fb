package controller

import (
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISummaryController interface {
	RegisterRoutes(r fiber.Router)
	CreateChatSummary(ctx *fiber.Ctx) error
	ListChatSummaries(ctx *fiber.Ctx) error
	CreateJournalSummary(ctx *fiber.Ctx) error
	GetJournalSummary(ctx *fiber.Ctx) error
}

type summaryController struct {
	summaryService service.ISummaryService
	auth           fiber.Handler
}

func NewSummaryController(summaryService service.ISummaryService, auth fiber.Handler) ISummaryController {
	return &summaryController{
		summaryService: summaryService,
		auth:           auth,
	}
}

func (c *summaryController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat-summaries", c.auth, c.CreateChatSummary)
	r.Get("/chat-summaries", c.auth, c.ListChatSummaries)
	r.Post("/journal-summaries", c.auth, c.CreateJournalSummary)
	r.Get("/journal-summaries", c.auth, c.GetJournalSummary)
}

func (c *summaryController) CreateChatSummary(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateChatSummaryRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	sessionId, err := parseUUID("session_id", req.SessionId)
	if err != nil {
		return err
	}

	res, err := c.summaryService.CreateChatSummary(ctx.UserContext(), userId, sessionId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *summaryController) ListChatSummaries(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.summaryService.ListChatSummaries(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *summaryController) CreateJournalSummary(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.JournalSummaryRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	start, end, err := service.ParseDateWindow(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	res, err := c.summaryService.CreateJournalSummary(ctx.UserContext(), userId, start, end)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *summaryController) GetJournalSummary(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.JournalSummaryRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Validation("Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	start, end, err := service.ParseDateWindow(req.StartDate, req.EndDate)
	if err != nil {
		return err
	}

	res, err := c.summaryService.GetJournalSummary(ctx.UserContext(), userId, start, end)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

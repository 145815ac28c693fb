package controller

import (
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IJournalController interface {
	RegisterRoutes(r fiber.Router)
	SaveGoalsAndJournal(ctx *fiber.Ctx) error
	JournalDates(ctx *fiber.Ctx) error
}

type journalController struct {
	journalService service.IJournalService
	auth           fiber.Handler
}

func NewJournalController(journalService service.IJournalService, auth fiber.Handler) IJournalController {
	return &journalController{
		journalService: journalService,
		auth:           auth,
	}
}

func (c *journalController) RegisterRoutes(r fiber.Router) {
	r.Post("/goals-journals", c.auth, c.SaveGoalsAndJournal)
	r.Get("/journal-dates", c.auth, c.JournalDates)
}

func (c *journalController) SaveGoalsAndJournal(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GoalsJournalsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.journalService.SaveGoalsAndJournal(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *journalController) JournalDates(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.journalService.JournalDates(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

package controller

import (
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInsightController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Latest(ctx *fiber.Ctx) error
}

type insightController struct {
	insightService service.IInsightService
	auth           fiber.Handler
}

func NewInsightController(insightService service.IInsightService, auth fiber.Handler) IInsightController {
	return &insightController{
		insightService: insightService,
		auth:           auth,
	}
}

func (c *insightController) RegisterRoutes(r fiber.Router) {
	r.Post("/generate-insights", c.auth, c.Generate)
	r.Get("/insights", c.auth, c.Latest)
}

func (c *insightController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.insightService.Generate(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *insightController) Latest(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.insightService.Latest(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

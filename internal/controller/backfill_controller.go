package controller

import (
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBackfillController interface {
	RegisterRoutes(r fiber.Router)
	Enqueue(ctx *fiber.Ctx) error
}

type backfillController struct {
	backfillService service.IBackfillService
	auth            fiber.Handler
}

func NewBackfillController(backfillService service.IBackfillService, auth fiber.Handler) IBackfillController {
	return &backfillController{
		backfillService: backfillService,
		auth:            auth,
	}
}

func (c *backfillController) RegisterRoutes(r fiber.Router) {
	r.Post("/backfill", c.auth, c.Enqueue)
}

// Enqueue queues a backfill of the caller's own summaries and profile.
func (c *backfillController) Enqueue(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.backfillService.Enqueue(ctx.UserContext(), userId, dto.BackfillSourceHTTP)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(res)
}

package controller

import (
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router)
	Get(ctx *fiber.Ctx) error
	Upsert(ctx *fiber.Ctx) error
}

type profileController struct {
	profileService service.IProfileService
	auth           fiber.Handler
}

func NewProfileController(profileService service.IProfileService, auth fiber.Handler) IProfileController {
	return &profileController{
		profileService: profileService,
		auth:           auth,
	}
}

func (c *profileController) RegisterRoutes(r fiber.Router) {
	r.Get("/user-profile", c.auth, c.Get)
	r.Put("/user-profile", c.auth, c.Upsert)
}

func (c *profileController) Get(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.profileService.GetOrGenerate(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *profileController) Upsert(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpsertProfileRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.profileService.Upsert(ctx.UserContext(), userId, req.ProfileData)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

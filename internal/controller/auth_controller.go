package controller

import (
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/serverutils"
	"ai-journaling-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const refreshCookieName = "refresh_token"

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	SignUp(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
	Protected(ctx *fiber.Ctx) error
}

type authController struct {
	authService   service.IAuthService
	auth          fiber.Handler
	secureCookies bool
}

func NewAuthController(authService service.IAuthService, auth fiber.Handler, secureCookies bool) IAuthController {
	return &authController{
		authService:   authService,
		auth:          auth,
		secureCookies: secureCookies,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	r.Post("/signup", c.SignUp)
	r.Post("/login", c.Login)
	r.Post("/refresh", c.Refresh)
	r.Get("/protected", c.auth, c.Protected)
}

func (c *authController) SignUp(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.SignUp(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

// Refresh takes the refresh token from the body, falling back to the cookie
// set by a previous refresh.
func (c *authController) Refresh(ctx *fiber.Ctx) error {
	var req dto.RefreshRequest
	if len(ctx.Body()) > 0 {
		if err := parseBody(ctx, &req); err != nil {
			return err
		}
	}
	if req.RefreshToken == "" {
		req.RefreshToken = ctx.Cookies(refreshCookieName)
	}

	res, err := c.authService.Refresh(ctx.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}

	ctx.Cookie(&fiber.Cookie{
		Name:     refreshCookieName,
		Value:    res.RefreshToken,
		HTTPOnly: true,
		Secure:   c.secureCookies,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return ctx.JSON(res)
}

func (c *authController) Protected(ctx *fiber.Ctx) error {
	user := serverutils.CurrentUser(ctx)
	res := dto.ProtectedResponse{Message: "You have accessed a protected route!"}
	if user != nil {
		res.User = &dto.AuthUserResponse{Id: user.Id, Email: user.Email, Role: user.Role}
	}
	return ctx.JSON(res)
}

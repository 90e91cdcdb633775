package controller

import (
	"bandoxanh-be/internal/pkg/serverutils"
	"bandoxanh-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	LoginURL(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	oauthService service.IOAuthService
}

func NewOAuthController(oauthService service.IOAuthService) IOAuthController {
	return &oauthController{
		oauthService: oauthService,
	}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/oauth/v1")
	h.Get(":provider/login", c.LoginURL)
	h.Get(":provider/callback", c.Callback)
}

func (c *oauthController) LoginURL(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	url, err := c.oauthService.GetLoginURL(provider)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get login url", fiber.Map{"url": url}))
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	code := ctx.Query("code")
	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing code"))
	}

	res, err := c.oauthService.HandleCallback(ctx.Context(), provider, code)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success oauth login", res))
}

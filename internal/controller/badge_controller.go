package controller

import (
	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/pkg/serverutils"
	"bandoxanh-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBadgeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Mine(ctx *fiber.Ctx) error
	Scan(ctx *fiber.Ctx) error
}

type badgeController struct {
	badgeService service.IBadgeService
}

func NewBadgeController(badgeService service.IBadgeService) IBadgeController {
	return &badgeController{
		badgeService: badgeService,
	}
}

func (c *badgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/badge/v1")
	h.Get("", c.List)

	h.Use(serverutils.JwtMiddleware)
	h.Get("mine", c.Mine)
	h.Post("scan", c.Scan)
}

func (c *badgeController) List(ctx *fiber.Ctx) error {
	res, err := c.badgeService.ListBadges(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list badges", res))
}

func (c *badgeController) Mine(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.badgeService.MyBadges(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list my badges", res))
}

func (c *badgeController) Scan(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.ScanBadgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.badgeService.ScanQr(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success scan badge", res))
}

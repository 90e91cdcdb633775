package controller

import (
	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/pkg/serverutils"
	"bandoxanh-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	Plans(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Notification(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{
		paymentService: paymentService,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment/v1")

	h.Get("plans", c.Plans)

	// Midtrans calls this server-to-server; auth is the signature check.
	h.Post("notification", c.Notification)

	h.Post("checkout", serverutils.JwtMiddleware, c.Checkout)
}

func (c *paymentController) Plans(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Available plans", c.paymentService.ListPlans()))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.paymentService.CreateUpgrade(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create checkout", res))
}

func (c *paymentController) Notification(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := c.paymentService.HandleNotification(ctx.Context(), &req); err != nil {
		// Midtrans retries on non-2xx; signature failures must not retry.
		if err.Error() == "invalid signature" {
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, err.Error()))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("OK", nil))
}

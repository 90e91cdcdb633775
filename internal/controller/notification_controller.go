package controller

import (
	"strconv"

	"bandoxanh-be/internal/pkg/serverutils"
	"bandoxanh-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	MarkAllRead(ctx *fiber.Ctx) error
}

type notificationController struct {
	notificationService *service.NotificationService
}

func NewNotificationController(notificationService *service.NotificationService) INotificationController {
	return &notificationController{
		notificationService: notificationService,
	}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notification/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Put("read-all", c.MarkAllRead)
	h.Put(":id/read", c.MarkRead)
}

func (c *notificationController) List(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	res, err := c.notificationService.List(ctx.Context(), userId, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notifications", res))
}

func (c *notificationController) MarkRead(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid notification ID"))
	}

	if err := c.notificationService.MarkRead(ctx.Context(), id, userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Notification marked read", nil))
}

func (c *notificationController) MarkAllRead(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	if err := c.notificationService.MarkAllRead(ctx.Context(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("All notifications marked read", nil))
}

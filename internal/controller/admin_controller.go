package controller

import (
	"strconv"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/pkg/serverutils"
	"bandoxanh-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Dashboard(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	UpdateUserRole(ctx *fiber.Ctx) error
	UpdateUserStatus(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogById(ctx *fiber.Ctx) error
	CreateBadge(ctx *fiber.Ctx) error
	UpdateBadge(ctx *fiber.Ctx) error
	DeleteBadge(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
	authService  service.IAuthService
	badgeService service.IBadgeService
}

func NewAdminController(adminService service.IAdminService, authService service.IAuthService, badgeService service.IBadgeService) IAdminController {
	return &adminController{
		adminService: adminService,
		authService:  authService,
		badgeService: badgeService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")

	h.Post("login", c.Login)

	h.Use(serverutils.AdminMiddleware)

	h.Get("dashboard", c.Dashboard)
	h.Get("logs", c.GetLogs)
	h.Get("logs/:id", c.GetLogById)

	h.Get("users", c.ListUsers)
	h.Put("users/:id/role", c.UpdateUserRole)
	h.Put("users/:id/status", c.UpdateUserStatus)
	h.Delete("users/:id", c.DeleteUser)

	h.Post("badges", c.CreateBadge)
	h.Put("badges/:id", c.UpdateBadge)
	h.Delete("badges/:id", c.DeleteBadge)
}

// Login is regular credential login; the admin role check happens in the
// middleware on every subsequent request.
func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.Context(), &dto.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "invalid credentials"))
	}
	if res.User == nil || res.User.Role != "admin" {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Access denied: Admins only"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Admin login successful", res))
}

func (c *adminController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.adminService.Dashboard(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Dashboard stats", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))
	query := ctx.Query("q", "")

	res, err := c.adminService.ListUsers(ctx.Context(), query, page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User list", res))
}

func (c *adminController) UpdateUserRole(ctx *fiber.Ctx) error {
	actorId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	userId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	var req dto.UpdateUserRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.UpdateUserRole(ctx.Context(), actorId, userId, req.Role); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User role updated", nil))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.UpdateUserStatus(ctx.Context(), userId, req.Status); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User status updated", nil))
}

func (c *adminController) DeleteUser(ctx *fiber.Ctx) error {
	actorId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	userId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	if err := c.adminService.DeleteUser(ctx.Context(), actorId, userId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User deleted", nil))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "100"))
	level := ctx.Query("level", "")
	if page < 1 {
		page = 1
	}

	logs, err := c.adminService.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogById(ctx *fiber.Ctx) error {
	entry, err := c.adminService.GetLogById(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log entry", entry))
}

func (c *adminController) CreateBadge(ctx *fiber.Ctx) error {
	var req dto.CreateBadgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.badgeService.CreateBadge(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Badge created", res))
}

func (c *adminController) UpdateBadge(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid badge ID"))
	}

	var req dto.CreateBadgeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.badgeService.UpdateBadge(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Badge updated", res))
}

func (c *adminController) DeleteBadge(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid badge ID"))
	}

	if err := c.badgeService.DeleteBadge(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Badge deleted", nil))
}

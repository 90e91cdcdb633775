package content

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bandoxanh-be/internal/pkg/serverutils"
)

// Resource serves one map-content table through a uniform CRUD surface.
// Reads are public, mutations go through the admin guard.
type Resource[T any] struct {
	db      *gorm.DB
	name    string
	orderBy string
}

func NewResource[T any](db *gorm.DB, name, orderBy string) *Resource[T] {
	return &Resource[T]{
		db:      db,
		name:    name,
		orderBy: orderBy,
	}
}

func (res *Resource[T]) RegisterRoutes(r fiber.Router, adminGuard fiber.Handler) {
	h := r.Group("/" + res.name)
	h.Get("", res.List)
	h.Get("/:id", res.Show)
	h.Post("", adminGuard, res.Create)
	h.Put("/:id", adminGuard, res.Update)
	h.Delete("/:id", adminGuard, res.Delete)
}

func (res *Resource[T]) List(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}

	var items []T
	err := res.db.WithContext(ctx.Context()).
		Order(res.orderBy).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&items).Error
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list "+res.name, items))
}

func (res *Resource[T]) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ID"))
	}

	var item T
	err = res.db.WithContext(ctx.Context()).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Not found"))
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show "+res.name, item))
}

func (res *Resource[T]) Create(ctx *fiber.Ctx) error {
	var item T
	if err := ctx.BodyParser(&item); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(item); err != nil {
		return err
	}

	if err := res.db.WithContext(ctx.Context()).Create(&item).Error; err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create "+res.name, item))
}

func (res *Resource[T]) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ID"))
	}

	var item T
	err = res.db.WithContext(ctx.Context()).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Not found"))
		}
		return err
	}

	if err := ctx.BodyParser(&item); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(item); err != nil {
		return err
	}

	// The row id comes from the URL, never from the body.
	err = res.db.WithContext(ctx.Context()).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at").
		Updates(&item).Error
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update "+res.name, item))
}

func (res *Resource[T]) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid ID"))
	}

	var item T
	result := res.db.WithContext(ctx.Context()).Delete(&item, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete "+res.name, nil))
}

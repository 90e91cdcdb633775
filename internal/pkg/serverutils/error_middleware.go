package serverutils

import (
	"errors"
	"log"

	"bandoxanh-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ErrorHandlerMiddleware maps errors escaping the handlers onto the response
// envelope. Anything unrecognized becomes a generic 500; the detail only goes
// to the server log.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(BaseResponse[map[string]string]{
				Success: false,
				Code:    400,
				Message: "Validation failed",
				Data:    validationErr.Fields,
			})
		}

		var quotaErr *dto.QuotaExceededError
		if errors.As(err, &quotaErr) {
			message := "Daily limit reached. Upgrade to Pro for more requests."
			if quotaErr.Guest {
				message = "Daily guest limit reached. Sign in to continue."
			}
			return ctx.Status(fiber.StatusForbidden).JSON(BaseResponse[*dto.QuotaExceededError]{
				Success: false,
				Code:    403,
				Message: message,
				Data:    quotaErr,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, "Not found"))
		}

		log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
	}
}

package controller

import (
	"io"
	"strings"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/pkg/serverutils"
	"bandoxanh-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const maxUploadBytes = 10 << 20 // 10 MB

type IAiController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type aiController struct {
	aiService service.IAiService
}

func NewAiController(aiService service.IAiService) IAiController {
	return &aiController{
		aiService: aiService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai/v1")

	// Analysis is open to guests under the per-IP quota. One route per
	// analysis kind, plus a generic endpoint taking kind as a form value.
	h.Post("identify", serverutils.OptionalJwtMiddleware, c.analyzeKind(entity.AnalysisKindIdentify))
	h.Post("diy/analyze", serverutils.OptionalJwtMiddleware, c.analyzeKind(entity.AnalysisKindDiy))
	h.Post("vegetarian/analyze", serverutils.OptionalJwtMiddleware, c.analyzeKind(entity.AnalysisKindVegetarian))
	h.Post("calories/analyze", serverutils.OptionalJwtMiddleware, c.analyzeKind(entity.AnalysisKindCalories))
	h.Post("analyze", serverutils.OptionalJwtMiddleware, c.Analyze)

	h.Get("history", serverutils.JwtMiddleware, c.History)
}

// clientKey identifies anonymous callers for the guest quota. Behind a
// proxy the first X-Forwarded-For hop is the real client.
func clientKey(ctx *fiber.Ctx) string {
	if fwd := ctx.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	return ctx.IP()
}

func (c *aiController) analyzeKind(kind entity.AnalysisKind) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return c.analyze(ctx, kind)
	}
}

func (c *aiController) Analyze(ctx *fiber.Ctx) error {
	kind := entity.AnalysisKind(ctx.FormValue("kind", string(entity.AnalysisKindIdentify)))
	return c.analyze(ctx, kind)
}

func (c *aiController) analyze(ctx *fiber.Ctx, kind entity.AnalysisKind) error {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Missing image"))
	}
	if fileHeader.Size > maxUploadBytes {
		return ctx.Status(fiber.StatusRequestEntityTooLarge).JSON(serverutils.ErrorResponse(413, "Image too large"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	res, err := c.aiService.Analyze(ctx.Context(), viewerId(ctx), clientKey(ctx), kind, image, mimeType, ctx.FormValue("note"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze", res))
}

func (c *aiController) History(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.aiService.History(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

package controller

import (
	"strconv"

	"bandoxanh-be/internal/dto"
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/pkg/serverutils"
	"bandoxanh-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPostController interface {
	RegisterRoutes(r fiber.Router)
	Feed(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ToggleLike(ctx *fiber.Ctx) error
	ToggleReaction(ctx *fiber.Ctx) error
	ShowReactions(ctx *fiber.Ctx) error
	AddComment(ctx *fiber.Ctx) error
	ListComments(ctx *fiber.Ctx) error
	DeleteComment(ctx *fiber.Ctx) error
	VotePoll(ctx *fiber.Ctx) error
}

type postController struct {
	postService service.IPostService
}

func NewPostController(postService service.IPostService) IPostController {
	return &postController{
		postService: postService,
	}
}

func (c *postController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/post/v1")

	// Reads work anonymously; a token enriches them with viewer state.
	h.Get("feed", serverutils.OptionalJwtMiddleware, c.Feed)
	h.Get(":id", serverutils.OptionalJwtMiddleware, c.Show)
	h.Get(":id/react", serverutils.OptionalJwtMiddleware, c.ShowReactions)
	h.Get(":id/comments", c.ListComments)

	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Delete(":id", c.Delete)
	h.Post(":id/like", c.ToggleLike)
	h.Post(":id/react", c.ToggleReaction)
	h.Post(":id/comments", c.AddComment)
	h.Delete("comments/:commentId", c.DeleteComment)
	h.Post("poll-options/:optionId/vote", c.VotePoll)
}

// requireUserId reads the identity set by the JWT middleware. A missing or
// malformed claim is rejected as unauthorized.
func requireUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "missing user identity")
	}
	return userId, nil
}

// viewerId returns the authenticated user's id, or nil for anonymous calls.
func viewerId(ctx *fiber.Ctx) *uuid.UUID {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return nil
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil
	}
	return &userId
}

func (c *postController) Feed(ctx *fiber.Ctx) error {
	page, _ := strconv.Atoi(ctx.Query("page", "1"))
	limit, _ := strconv.Atoi(ctx.Query("limit", "20"))

	res, err := c.postService.GetFeed(ctx.Context(), viewerId(ctx), page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get feed", res))
}

func (c *postController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post ID"))
	}

	res, err := c.postService.GetPost(ctx.Context(), viewerId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show post", res))
}

func (c *postController) Create(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}
	if req.Poll != nil {
		if err := serverutils.ValidateRequest(*req.Poll); err != nil {
			return err
		}
	}

	res, err := c.postService.CreatePost(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create post", res))
}

func (c *postController) Delete(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}
	role, _ := ctx.Locals("role").(string)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post ID"))
	}

	if err := c.postService.DeletePost(ctx.Context(), userId, entity.UserRole(role), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete post", nil))
}

func (c *postController) ToggleLike(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post ID"))
	}

	res, err := c.postService.ToggleLike(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle like", res))
}

func (c *postController) ToggleReaction(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post ID"))
	}

	var req dto.ReactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.ToggleReaction(ctx.Context(), userId, id, req.Type)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle reaction", res))
}

func (c *postController) ShowReactions(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post ID"))
	}

	res, err := c.postService.GetReactions(ctx.Context(), viewerId(ctx), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get reactions", res))
}

func (c *postController) AddComment(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post ID"))
	}

	var req dto.CreateCommentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.AddComment(ctx.Context(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add comment", res))
}

func (c *postController) ListComments(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid post ID"))
	}

	res, err := c.postService.ListComments(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list comments", res))
}

func (c *postController) DeleteComment(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}
	role, _ := ctx.Locals("role").(string)

	commentId, err := uuid.Parse(ctx.Params("commentId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid comment ID"))
	}

	if err := c.postService.DeleteComment(ctx.Context(), userId, entity.UserRole(role), commentId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete comment", nil))
}

func (c *postController) VotePoll(ctx *fiber.Ctx) error {
	userId, err := requireUserId(ctx)
	if err != nil {
		return err
	}

	optionId, err := uuid.Parse(ctx.Params("optionId"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid option ID"))
	}

	res, err := c.postService.VotePoll(ctx.Context(), userId, optionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success vote", res))
}

package controller

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
)

func TestRequireUserId(t *testing.T) {
	app := fiber.New()
	ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(ctx)

	// No identity in locals must reject, never panic.
	_, err := requireUserId(ctx)
	require.Error(t, err)
	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusUnauthorized, fiberErr.Code)

	ctx.Locals("user_id", "not-a-uuid")
	_, err = requireUserId(ctx)
	require.Error(t, err)
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusUnauthorized, fiberErr.Code)

	id := uuid.New()
	ctx.Locals("user_id", id.String())
	got, err := requireUserId(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestViewerId_AnonymousIsNil(t *testing.T) {
	app := fiber.New()
	ctx := app.AcquireCtx(&fasthttp.RequestCtx{})
	defer app.ReleaseCtx(ctx)

	assert.Nil(t, viewerId(ctx))

	id := uuid.New()
	ctx.Locals("user_id", id.String())
	got := viewerId(ctx)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}

package handler

import (
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"bandoxanh-be/internal/websocket"
)

// NotificationHandler exposes the realtime notification socket. The REST
// side of notifications lives in the notification controller.
type NotificationHandler struct {
	hub *websocket.Hub
}

func NewNotificationHandler(hub *websocket.Hub) *NotificationHandler {
	return &NotificationHandler{hub: hub}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/notification/v1")

	g.Get("/ws", h.upgradeRequired, fiberws.New(func(c *fiberws.Conn) {
		userId, ok := c.Locals("ws_user_id").(uuid.UUID)
		if !ok {
			c.Close()
			return
		}
		websocket.ServeWs(h.hub, c, userId)
	}))
}

// Browsers cannot set headers on WebSocket dials, so the token is also
// accepted as a query parameter.
func (h *NotificationHandler) upgradeRequired(ctx *fiber.Ctx) error {
	if !fiberws.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	tokenString := ctx.Query("token")
	if tokenString == "" {
		authHeader := ctx.Get("Authorization")
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}
	if tokenString == "" {
		return fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid claims")
	}
	userIdStr, _ := claims["user_id"].(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid user id")
	}

	ctx.Locals("ws_user_id", userId)
	return ctx.Next()
}

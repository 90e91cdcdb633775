package contract

import (
	"context"

	"bandoxanh-be/internal/model"
	"bandoxanh-be/internal/repository/specification"

	"github.com/google/uuid"
)

// NotificationRepository works on models directly. Notifications are a
// delivery concern and have no domain behavior beyond read marking.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.Notification, error)
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userId uuid.UUID) error
	MarkAllRead(ctx context.Context, userId uuid.UUID) error
	FindTypeByCode(ctx context.Context, code string) (*model.NotificationType, error)
	SaveType(ctx context.Context, t *model.NotificationType) error
}

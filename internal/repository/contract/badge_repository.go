package contract

import (
	"context"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BadgeRepository interface {
	Create(ctx context.Context, badge *entity.Badge) error
	Update(ctx context.Context, badge *entity.Badge) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Badge, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Badge, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// Awards
	CreateUserBadge(ctx context.Context, userBadge *entity.UserBadge) error
	FindUserBadge(ctx context.Context, specs ...specification.Specification) (*entity.UserBadge, error)
	FindAllUserBadges(ctx context.Context, specs ...specification.Specification) ([]*entity.UserBadge, error)
	CountUserBadges(ctx context.Context, specs ...specification.Specification) (int64, error)
}

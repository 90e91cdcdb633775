package contract

import (
	"context"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FollowRepository interface {
	Create(ctx context.Context, follow *entity.Follow) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Follow, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Follow, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

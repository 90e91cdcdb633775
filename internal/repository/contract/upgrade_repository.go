package contract

import (
	"context"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UpgradeRepository interface {
	Create(ctx context.Context, upgrade *entity.ProUpgrade) error
	Update(ctx context.Context, upgrade *entity.ProUpgrade) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProUpgrade, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProUpgrade, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

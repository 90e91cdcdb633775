package contract

import (
	"context"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"
)

type AnalysisRepository interface {
	Create(ctx context.Context, analysis *entity.Analysis) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Analysis, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

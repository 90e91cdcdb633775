package contract

import (
	"context"
	"time"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindOneUnscoped(ctx context.Context, specs ...specification.Specification) (*entity.User, error) // Includes soft-deleted
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) error // Reactivate soft-deleted user

	// Business Specific
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdatePlan(ctx context.Context, id uuid.UUID, plan string) error
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error
	SetDailyUsage(ctx context.Context, id uuid.UUID, usage int, lastReset time.Time) error

	// Provider
	SaveUserProvider(ctx context.Context, provider *entity.UserProvider) error
	FindProvider(ctx context.Context, specs ...specification.Specification) (*entity.UserProvider, error)

	// Queries/Stats
	SearchUsers(ctx context.Context, query string, limit, offset int) ([]*entity.User, error)
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserPlan string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserPlanFree UserPlan = "free"
	UserPlanPro  UserPlan = "pro"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

type User struct {
	Id                    uuid.UUID
	Email                 string
	PasswordHash          *string
	FullName              string
	Role                  UserRole
	Plan                  UserPlan
	Status                UserStatus
	AvatarURL             *string
	AiDailyUsage          int
	AiDailyUsageLastReset time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// UserProvider links a local user to an external authentication identity.
// Re-linking (same provider identity, new avatar) upserts on the
// (provider_name, provider_user_id) pair.
type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}

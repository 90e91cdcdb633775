package specification

import (
	"gorm.io/gorm"
)

// ByEmail filters users by email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByProviderIdentity filters provider links by the external identity pair
type ByProviderIdentity struct {
	ProviderName   string
	ProviderUserId string
}

func (s ByProviderIdentity) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider_name = ? AND provider_user_id = ?", s.ProviderName, s.ProviderUserId)
}

// ByRole filters users by role
type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}

// ByPlan filters users by plan
type ByPlan struct {
	Plan string
}

func (s ByPlan) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("plan = ?", s.Plan)
}

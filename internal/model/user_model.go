package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email                 string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash          *string   `gorm:"type:varchar(255)"`
	FullName              string    `gorm:"type:varchar(255);not null"`
	Role                  string    `gorm:"type:varchar(20);not null;default:'user'"`
	Plan                  string    `gorm:"type:varchar(20);not null;default:'free'"`
	Status                string    `gorm:"type:varchar(20);not null;default:'active'"`
	AvatarURL             *string   `gorm:"type:text"`
	AiDailyUsage          int       `gorm:"not null;default:0"`
	AiDailyUsageLastReset time.Time `gorm:"not null;default:now()"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

type UserProvider struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderName   string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_provider_identity"`
	ProviderUserId string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_provider_identity"`
	AvatarURL      string    `gorm:"type:text"`
	CreatedAt      time.Time

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (UserProvider) TableName() string {
	return "user_providers"
}

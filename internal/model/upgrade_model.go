package model

import (
	"time"

	"github.com/google/uuid"
)

type ProUpgrade struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount    float64   `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (ProUpgrade) TableName() string {
	return "pro_upgrades"
}

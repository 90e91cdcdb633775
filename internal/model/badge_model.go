package model

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	IconURL     string    `gorm:"type:text"`
	QrCode      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt   time.Time
}

func (Badge) TableName() string {
	return "badges"
}

type UserBadge struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badges_pair"`
	BadgeId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_badges_pair"`
	AwardedAt time.Time `gorm:"not null;default:now()"`

	User  *User  `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	Badge *Badge `gorm:"foreignKey:BadgeId;constraint:OnDelete:CASCADE"`
}

func (UserBadge) TableName() string {
	return "user_badges"
}

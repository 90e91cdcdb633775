package entity

import (
	"time"

	"github.com/google/uuid"
)

type Badge struct {
	Id          uuid.UUID
	Name        string
	Description string
	IconURL     string
	QrCode      string
	CreatedAt   time.Time
}

type UserBadge struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	BadgeId   uuid.UUID
	AwardedAt time.Time
}

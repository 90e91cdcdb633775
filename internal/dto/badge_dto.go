package dto

import (
	"time"

	"github.com/google/uuid"
)

type ScanBadgeRequest struct {
	QrCode string `json:"qr_code" validate:"required,max=255"`
}

type ScanBadgeResponse struct {
	Badge         *BadgeResponse `json:"badge"`
	AlreadyEarned bool           `json:"already_earned"`
}

type BadgeResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	IconURL     string     `json:"icon_url"`
	AwardedAt   *time.Time `json:"awarded_at,omitempty"`
}

type CreateBadgeRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
	IconURL     string `json:"icon_url" validate:"omitempty,max=2048"`
	QrCode      string `json:"qr_code" validate:"required,max=255"`
}

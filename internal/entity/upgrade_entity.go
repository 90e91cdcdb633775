package entity

import (
	"time"

	"github.com/google/uuid"
)

type UpgradeStatus string

const (
	UpgradeStatusPending UpgradeStatus = "pending"
	UpgradeStatusPaid    UpgradeStatus = "paid"
	UpgradeStatusFailed  UpgradeStatus = "failed"
)

// ProUpgrade is the order record for a Pro plan purchase. The payment
// provider webhook settles it and flips the user's plan.
type ProUpgrade struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Amount    float64
	Status    UpgradeStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

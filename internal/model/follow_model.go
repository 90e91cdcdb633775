package model

import (
	"time"

	"github.com/google/uuid"
)

type Follow struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FollowerId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair"`
	FolloweeId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_follows_pair;index"`
	CreatedAt  time.Time

	Follower *User `gorm:"foreignKey:FollowerId;constraint:OnDelete:CASCADE"`
	Followee *User `gorm:"foreignKey:FolloweeId;constraint:OnDelete:CASCADE"`
}

func (Follow) TableName() string {
	return "follows"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Follow is an ordered edge: at most one per (follower, followee), and
// follower != followee.
type Follow struct {
	Id         uuid.UUID
	FollowerId uuid.UUID
	FolloweeId uuid.UUID
	CreatedAt  time.Time
}

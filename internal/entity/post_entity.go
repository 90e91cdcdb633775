package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReactionType string

const (
	ReactionGreenHeart ReactionType = "green_heart"
	ReactionSeedling   ReactionType = "seedling"
	ReactionRecycle    ReactionType = "recycle"
	ReactionBulb       ReactionType = "bulb"
	ReactionClap       ReactionType = "clap"
)

type Post struct {
	Id      uuid.UUID
	UserId  uuid.UUID
	Content string
	ImageURL *string
	// LikesCount is a denormalized cache of the like-edge count. It is always
	// recomputed from the edges, never incremented in place.
	LikesCount int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

type Comment struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	UserId    uuid.UUID
	Content   string
	CreatedAt time.Time
}

// Like is an existence-only edge: at most one per (post, user).
type Like struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
}

// Reaction is a single-choice edge: at most one per (post, user), with a
// mutable type attribute.
type Reaction struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	UserId    uuid.UUID
	Type      ReactionType
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type Poll struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	Question  string
	CreatedAt time.Time
	Options   []*PollOption
}

type PollOption struct {
	Id     uuid.UUID
	PollId uuid.UUID
	Label  string
}

type PollVote struct {
	Id        uuid.UUID
	OptionId  uuid.UUID
	UserId    uuid.UUID
	CreatedAt time.Time
}

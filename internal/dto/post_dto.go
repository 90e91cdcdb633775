package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Content  string             `json:"content" validate:"required,max=5000"`
	ImageURL *string            `json:"image_url" validate:"omitempty,max=2048"`
	Poll     *CreatePollRequest `json:"poll"`
}

type CreatePollRequest struct {
	Question string   `json:"question" validate:"required,max=500"`
	Options  []string `json:"options" validate:"required,min=2,max=10,dive,required,max=255"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

type ReactRequest struct {
	Type string `json:"type" validate:"required,oneof=green_heart seedling recycle bulb clap"`
}

// LikeResponse reports the state after a like toggle.
type LikeResponse struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

// ReactionResponse reports the caller's reaction (empty when removed) and
// the per-type counts after a reaction toggle.
type ReactionResponse struct {
	Reaction string           `json:"reaction"`
	Counts   map[string]int64 `json:"counts"`
}

type VoteResponse struct {
	VotedOptionId *uuid.UUID   `json:"voted_option_id"`
	Results       []PollResult `json:"results"`
}

type PollResult struct {
	OptionId uuid.UUID `json:"option_id"`
	Label    string    `json:"label"`
	Votes    int64     `json:"votes"`
}

type PostResponse struct {
	Id           uuid.UUID         `json:"id"`
	Author       *UserSummary      `json:"author"`
	Content      string            `json:"content"`
	ImageURL     *string           `json:"image_url"`
	LikesCount   int64             `json:"likes_count"`
	Liked        bool              `json:"liked"`
	Reaction     string            `json:"reaction,omitempty"`
	Reactions    map[string]int64  `json:"reactions"`
	CommentCount int64             `json:"comment_count"`
	Poll         *PollResponse     `json:"poll,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

type PollResponse struct {
	Id            uuid.UUID    `json:"id"`
	Question      string       `json:"question"`
	VotedOptionId *uuid.UUID   `json:"voted_option_id"`
	Results       []PollResult `json:"results"`
}

type CommentResponse struct {
	Id        uuid.UUID    `json:"id"`
	Author    *UserSummary `json:"author"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

type FeedResponse struct {
	Posts []*PostResponse `json:"posts"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
	Total int64           `json:"total"`
}

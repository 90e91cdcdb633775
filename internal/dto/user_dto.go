package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	Id             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	Plan           string    `json:"plan"`
	AvatarURL      *string   `json:"avatar_url"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	PostCount      int64     `json:"post_count"`
	BadgeCount     int64     `json:"badge_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" validate:"omitempty,max=255"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=2048"`
}

// FollowResponse reports the state after a follow toggle.
type FollowResponse struct {
	Following     bool  `json:"following"`
	FollowerCount int64 `json:"follower_count"`
}

type UserSummary struct {
	Id        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
}

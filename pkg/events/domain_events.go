package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeUserRegistered = "USER_REGISTERED"
	TypeUserFollowed   = "USER_FOLLOWED"
	TypeReactionAdded  = "REACTION_ADDED"
	TypeBadgeAwarded   = "BADGE_AWARDED"
	TypeProUpgraded    = "PRO_UPGRADED"
)

func NewUserRegistered(userId uuid.UUID, email string) Event {
	return BaseEvent{
		Type: TypeUserRegistered,
		Data: map[string]interface{}{
			"user_id": userId.String(),
			"email":   email,
		},
		OccurredAt: time.Now(),
	}
}

func NewUserFollowed(followerId, followeeId uuid.UUID, followerName string) Event {
	return BaseEvent{
		Type: TypeUserFollowed,
		Data: map[string]interface{}{
			"follower_id":   followerId.String(),
			"followee_id":   followeeId.String(),
			"follower_name": followerName,
		},
		OccurredAt: time.Now(),
	}
}

func NewReactionAdded(postId, postOwnerId, actorId uuid.UUID, reactionType string) Event {
	return BaseEvent{
		Type: TypeReactionAdded,
		Data: map[string]interface{}{
			"post_id":       postId.String(),
			"post_owner_id": postOwnerId.String(),
			"actor_id":      actorId.String(),
			"reaction_type": reactionType,
		},
		OccurredAt: time.Now(),
	}
}

func NewBadgeAwarded(userId, badgeId uuid.UUID, badgeName string) Event {
	return BaseEvent{
		Type: TypeBadgeAwarded,
		Data: map[string]interface{}{
			"user_id":    userId.String(),
			"badge_id":   badgeId.String(),
			"badge_name": badgeName,
		},
		OccurredAt: time.Now(),
	}
}

func NewProUpgraded(userId, orderId uuid.UUID) Event {
	return BaseEvent{
		Type: TypeProUpgraded,
		Data: map[string]interface{}{
			"user_id":  userId.String(),
			"order_id": orderId.String(),
		},
		OccurredAt: time.Now(),
	}
}

package contract

import (
	"context"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/repository/specification"

	"github.com/google/uuid"
)

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Post, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Post, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SetLikesCount overwrites the denormalized counter with a recomputed value.
	SetLikesCount(ctx context.Context, id uuid.UUID, count int64) error
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPost(ctx context.Context, postId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Comment, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Comment, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type LikeRepository interface {
	Create(ctx context.Context, like *entity.Like) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPost(ctx context.Context, postId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Like, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type ReactionRepository interface {
	Create(ctx context.Context, reaction *entity.Reaction) error
	Update(ctx context.Context, reaction *entity.Reaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPost(ctx context.Context, postId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reaction, error)
	CountByType(ctx context.Context, postId uuid.UUID) (map[string]int64, error)
}

type PollRepository interface {
	Create(ctx context.Context, poll *entity.Poll) error
	DeleteByPost(ctx context.Context, postId uuid.UUID) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Poll, error)
	FindByPost(ctx context.Context, postId uuid.UUID) (*entity.Poll, error)
	FindOption(ctx context.Context, specs ...specification.Specification) (*entity.PollOption, error)

	CreateVote(ctx context.Context, vote *entity.PollVote) error
	DeleteVote(ctx context.Context, id uuid.UUID) error
	FindVote(ctx context.Context, specs ...specification.Specification) (*entity.PollVote, error)
	FindVoteByPoll(ctx context.Context, pollId, userId uuid.UUID) (*entity.PollVote, error)
	CountVotes(ctx context.Context, pollId uuid.UUID) (map[uuid.UUID]int64, error)
}

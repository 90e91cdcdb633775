package unitofwork

import (
	"context"

	"bandoxanh-be/internal/repository/contract"
)

// UnitOfWork scopes a set of repositories to one database handle. After
// Begin, every repository returned runs inside the same transaction until
// Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PostRepository() contract.PostRepository
	CommentRepository() contract.CommentRepository
	LikeRepository() contract.LikeRepository
	ReactionRepository() contract.ReactionRepository
	PollRepository() contract.PollRepository
	FollowRepository() contract.FollowRepository
	BadgeRepository() contract.BadgeRepository
	UpgradeRepository() contract.UpgradeRepository
	AnalysisRepository() contract.AnalysisRepository
	NotificationRepository() contract.NotificationRepository
}

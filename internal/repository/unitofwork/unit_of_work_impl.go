package unitofwork

import (
	"context"
	"fmt"

	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PostRepository() contract.PostRepository {
	return implementation.NewPostRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CommentRepository() contract.CommentRepository {
	return implementation.NewCommentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) LikeRepository() contract.LikeRepository {
	return implementation.NewLikeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReactionRepository() contract.ReactionRepository {
	return implementation.NewReactionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PollRepository() contract.PollRepository {
	return implementation.NewPollRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FollowRepository() contract.FollowRepository {
	return implementation.NewFollowRepository(u.getDB())
}

func (u *UnitOfWorkImpl) BadgeRepository() contract.BadgeRepository {
	return implementation.NewBadgeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UpgradeRepository() contract.UpgradeRepository {
	return implementation.NewUpgradeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AnalysisRepository() contract.AnalysisRepository {
	return implementation.NewAnalysisRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NotificationRepository() contract.NotificationRepository {
	return implementation.NewNotificationRepository(u.getDB())
}

package implementation

import (
	"context"
	"errors"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/mapper"
	"bandoxanh-be/internal/model"
	"bandoxanh-be/internal/repository/contract"
	"bandoxanh-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PostMapper
}

func NewLikeRepository(db *gorm.DB) contract.LikeRepository {
	return &LikeRepositoryImpl{
		db:     db,
		mapper: mapper.NewPostMapper(),
	}
}

func (r *LikeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *LikeRepositoryImpl) Create(ctx context.Context, like *entity.Like) error {
	m := r.mapper.LikeToModel(like)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*like = *r.mapper.LikeToEntity(m)
	return nil
}

func (r *LikeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Like{}).Error
}

func (r *LikeRepositoryImpl) DeleteByPost(ctx context.Context, postId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postId).Delete(&model.Like{}).Error
}

func (r *LikeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Like, error) {
	var m model.Like
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.LikeToEntity(&m), nil
}

func (r *LikeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Like{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

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

type FollowRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FollowMapper
}

func NewFollowRepository(db *gorm.DB) contract.FollowRepository {
	return &FollowRepositoryImpl{
		db:     db,
		mapper: mapper.NewFollowMapper(),
	}
}

func (r *FollowRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FollowRepositoryImpl) Create(ctx context.Context, follow *entity.Follow) error {
	m := r.mapper.ToModel(follow)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*follow = *r.mapper.ToEntity(m)
	return nil
}

func (r *FollowRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Follow{}).Error
}

func (r *FollowRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Follow, error) {
	var m model.Follow
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *FollowRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Follow, error) {
	var models []*model.Follow
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *FollowRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Follow{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

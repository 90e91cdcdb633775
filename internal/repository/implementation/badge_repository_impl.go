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

type BadgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.BadgeMapper
}

func NewBadgeRepository(db *gorm.DB) contract.BadgeRepository {
	return &BadgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewBadgeMapper(),
	}
}

func (r *BadgeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *BadgeRepositoryImpl) Create(ctx context.Context, badge *entity.Badge) error {
	m := r.mapper.ToModel(badge)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*badge = *r.mapper.ToEntity(m)
	return nil
}

func (r *BadgeRepositoryImpl) Update(ctx context.Context, badge *entity.Badge) error {
	m := r.mapper.ToModel(badge)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*badge = *r.mapper.ToEntity(m)
	return nil
}

func (r *BadgeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Badge{}).Error
}

func (r *BadgeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Badge, error) {
	var m model.Badge
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *BadgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Badge, error) {
	var models []*model.Badge
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *BadgeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Badge{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BadgeRepositoryImpl) CreateUserBadge(ctx context.Context, userBadge *entity.UserBadge) error {
	m := r.mapper.UserBadgeToModel(userBadge)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*userBadge = *r.mapper.UserBadgeToEntity(m)
	return nil
}

func (r *BadgeRepositoryImpl) FindUserBadge(ctx context.Context, specs ...specification.Specification) (*entity.UserBadge, error) {
	var m model.UserBadge
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.UserBadgeToEntity(&m), nil
}

func (r *BadgeRepositoryImpl) FindAllUserBadges(ctx context.Context, specs ...specification.Specification) ([]*entity.UserBadge, error) {
	var models []*model.UserBadge
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.UserBadgesToEntities(models), nil
}

func (r *BadgeRepositoryImpl) CountUserBadges(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.UserBadge{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

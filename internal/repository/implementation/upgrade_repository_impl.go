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

type UpgradeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.UpgradeMapper
}

func NewUpgradeRepository(db *gorm.DB) contract.UpgradeRepository {
	return &UpgradeRepositoryImpl{
		db:     db,
		mapper: mapper.NewUpgradeMapper(),
	}
}

func (r *UpgradeRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UpgradeRepositoryImpl) Create(ctx context.Context, upgrade *entity.ProUpgrade) error {
	m := r.mapper.ToModel(upgrade)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*upgrade = *r.mapper.ToEntity(m)
	return nil
}

func (r *UpgradeRepositoryImpl) Update(ctx context.Context, upgrade *entity.ProUpgrade) error {
	m := r.mapper.ToModel(upgrade)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*upgrade = *r.mapper.ToEntity(m)
	return nil
}

func (r *UpgradeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ProUpgrade, error) {
	var m model.ProUpgrade
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&m), nil
}

func (r *UpgradeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProUpgrade, error) {
	var models []*model.ProUpgrade
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(models), nil
}

func (r *UpgradeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ProUpgrade{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UpgradeRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&model.ProUpgrade{}).Where("id = ?", id).Update("status", status).Error
}

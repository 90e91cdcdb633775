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

type ReactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PostMapper
}

func NewReactionRepository(db *gorm.DB) contract.ReactionRepository {
	return &ReactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewPostMapper(),
	}
}

func (r *ReactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ReactionRepositoryImpl) Create(ctx context.Context, reaction *entity.Reaction) error {
	m := r.mapper.ReactionToModel(reaction)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*reaction = *r.mapper.ReactionToEntity(m)
	return nil
}

func (r *ReactionRepositoryImpl) Update(ctx context.Context, reaction *entity.Reaction) error {
	m := r.mapper.ReactionToModel(reaction)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*reaction = *r.mapper.ReactionToEntity(m)
	return nil
}

func (r *ReactionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Reaction{}).Error
}

func (r *ReactionRepositoryImpl) DeleteByPost(ctx context.Context, postId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postId).Delete(&model.Reaction{}).Error
}

func (r *ReactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Reaction, error) {
	var m model.Reaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ReactionToEntity(&m), nil
}

func (r *ReactionRepositoryImpl) CountByType(ctx context.Context, postId uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Reaction{}).
		Select("type, COUNT(*) as count").
		Where("post_id = ?", postId).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

package mapper

import (
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/model"
)

type UpgradeMapper struct{}

func NewUpgradeMapper() *UpgradeMapper {
	return &UpgradeMapper{}
}

func (m *UpgradeMapper) ToEntity(u *model.ProUpgrade) *entity.ProUpgrade {
	if u == nil {
		return nil
	}
	return &entity.ProUpgrade{
		Id:        u.Id,
		UserId:    u.UserId,
		Amount:    u.Amount,
		Status:    entity.UpgradeStatus(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *UpgradeMapper) ToModel(u *entity.ProUpgrade) *model.ProUpgrade {
	if u == nil {
		return nil
	}
	return &model.ProUpgrade{
		Id:        u.Id,
		UserId:    u.UserId,
		Amount:    u.Amount,
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (m *UpgradeMapper) ToEntities(models []*model.ProUpgrade) []*entity.ProUpgrade {
	entities := make([]*entity.ProUpgrade, 0, len(models))
	for _, u := range models {
		entities = append(entities, m.ToEntity(u))
	}
	return entities
}

package mapper

import (
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/model"
)

type FollowMapper struct{}

func NewFollowMapper() *FollowMapper {
	return &FollowMapper{}
}

func (m *FollowMapper) ToEntity(f *model.Follow) *entity.Follow {
	if f == nil {
		return nil
	}
	return &entity.Follow{
		Id:         f.Id,
		FollowerId: f.FollowerId,
		FolloweeId: f.FolloweeId,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *FollowMapper) ToModel(f *entity.Follow) *model.Follow {
	if f == nil {
		return nil
	}
	return &model.Follow{
		Id:         f.Id,
		FollowerId: f.FollowerId,
		FolloweeId: f.FolloweeId,
		CreatedAt:  f.CreatedAt,
	}
}

func (m *FollowMapper) ToEntities(models []*model.Follow) []*entity.Follow {
	entities := make([]*entity.Follow, 0, len(models))
	for _, f := range models {
		entities = append(entities, m.ToEntity(f))
	}
	return entities
}

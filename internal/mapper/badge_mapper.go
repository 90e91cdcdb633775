package mapper

import (
	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/model"
)

type BadgeMapper struct{}

func NewBadgeMapper() *BadgeMapper {
	return &BadgeMapper{}
}

func (m *BadgeMapper) ToEntity(b *model.Badge) *entity.Badge {
	if b == nil {
		return nil
	}
	return &entity.Badge{
		Id:          b.Id,
		Name:        b.Name,
		Description: b.Description,
		IconURL:     b.IconURL,
		QrCode:      b.QrCode,
		CreatedAt:   b.CreatedAt,
	}
}

func (m *BadgeMapper) ToModel(b *entity.Badge) *model.Badge {
	if b == nil {
		return nil
	}
	return &model.Badge{
		Id:          b.Id,
		Name:        b.Name,
		Description: b.Description,
		IconURL:     b.IconURL,
		QrCode:      b.QrCode,
		CreatedAt:   b.CreatedAt,
	}
}

func (m *BadgeMapper) ToEntities(models []*model.Badge) []*entity.Badge {
	entities := make([]*entity.Badge, 0, len(models))
	for _, b := range models {
		entities = append(entities, m.ToEntity(b))
	}
	return entities
}

func (m *BadgeMapper) UserBadgeToEntity(ub *model.UserBadge) *entity.UserBadge {
	if ub == nil {
		return nil
	}
	return &entity.UserBadge{
		Id:        ub.Id,
		UserId:    ub.UserId,
		BadgeId:   ub.BadgeId,
		AwardedAt: ub.AwardedAt,
	}
}

func (m *BadgeMapper) UserBadgeToModel(ub *entity.UserBadge) *model.UserBadge {
	if ub == nil {
		return nil
	}
	return &model.UserBadge{
		Id:        ub.Id,
		UserId:    ub.UserId,
		BadgeId:   ub.BadgeId,
		AwardedAt: ub.AwardedAt,
	}
}

func (m *BadgeMapper) UserBadgesToEntities(models []*model.UserBadge) []*entity.UserBadge {
	entities := make([]*entity.UserBadge, 0, len(models))
	for _, ub := range models {
		entities = append(entities, m.UserBadgeToEntity(ub))
	}
	return entities
}

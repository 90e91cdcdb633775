package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"bandoxanh-be/internal/entity"
	"bandoxanh-be/internal/model"
)

type AnalysisMapper struct{}

func NewAnalysisMapper() *AnalysisMapper {
	return &AnalysisMapper{}
}

func (m *AnalysisMapper) ToEntity(a *model.Analysis) *entity.Analysis {
	if a == nil {
		return nil
	}
	return &entity.Analysis{
		Id:        a.Id,
		UserId:    a.UserId,
		Kind:      entity.AnalysisKind(a.Kind),
		ImageURL:  a.ImageURL,
		Result:    json.RawMessage(a.Result),
		CreatedAt: a.CreatedAt,
	}
}

func (m *AnalysisMapper) ToModel(a *entity.Analysis) *model.Analysis {
	if a == nil {
		return nil
	}
	return &model.Analysis{
		Id:        a.Id,
		UserId:    a.UserId,
		Kind:      string(a.Kind),
		ImageURL:  a.ImageURL,
		Result:    datatypes.JSON(a.Result),
		CreatedAt: a.CreatedAt,
	}
}

func (m *AnalysisMapper) ToEntities(models []*model.Analysis) []*entity.Analysis {
	entities := make([]*entity.Analysis, 0, len(models))
	for _, a := range models {
		entities = append(entities, m.ToEntity(a))
	}
	return entities
}

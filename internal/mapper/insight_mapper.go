package mapper

import (
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/model"
)

type InsightMapper struct{}

func NewInsightMapper() *InsightMapper {
	return &InsightMapper{}
}

func (m *InsightMapper) InsightToEntity(i *model.TherapistInsight) *entity.TherapistInsight {
	if i == nil {
		return nil
	}
	return &entity.TherapistInsight{
		Id:        i.Id,
		UserId:    i.UserId,
		Content:   i.Content,
		CreatedAt: i.CreatedAt,
	}
}

func (m *InsightMapper) InsightToModel(i *entity.TherapistInsight) *model.TherapistInsight {
	if i == nil {
		return nil
	}
	return &model.TherapistInsight{
		Id:        i.Id,
		UserId:    i.UserId,
		Content:   i.Content,
		CreatedAt: i.CreatedAt,
	}
}

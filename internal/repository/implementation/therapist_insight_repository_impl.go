package implementation

import (
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/mapper"
	"ai-journaling-be/internal/model"
	"ai-journaling-be/internal/repository/contract"

	"gorm.io/gorm"
)

type TherapistInsightRepositoryImpl struct {
	*baseRepository[model.TherapistInsight, entity.TherapistInsight]
}

func NewTherapistInsightRepository(db *gorm.DB) contract.TherapistInsightRepository {
	m := mapper.NewInsightMapper()
	return &TherapistInsightRepositoryImpl{
		baseRepository: &baseRepository[model.TherapistInsight, entity.TherapistInsight]{
			db:       db,
			name:     "therapist_insights",
			toEntity: m.InsightToEntity,
			toModel:  m.InsightToModel,
		},
	}
}

package implementation

import (
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/mapper"
	"ai-journaling-be/internal/model"
	"ai-journaling-be/internal/repository/contract"

	"gorm.io/gorm"
)

type JournalRepositoryImpl struct {
	*baseRepository[model.Journal, entity.JournalEntry]
}

func NewJournalRepository(db *gorm.DB) contract.JournalRepository {
	m := mapper.NewJournalMapper()
	return &JournalRepositoryImpl{
		baseRepository: &baseRepository[model.Journal, entity.JournalEntry]{
			db:       db,
			name:     "journals",
			toEntity: m.JournalToEntity,
			toModel:  m.JournalToModel,
		},
	}
}

type GoalRepositoryImpl struct {
	*baseRepository[model.Goal, entity.Goal]
}

func NewGoalRepository(db *gorm.DB) contract.GoalRepository {
	m := mapper.NewJournalMapper()
	return &GoalRepositoryImpl{
		baseRepository: &baseRepository[model.Goal, entity.Goal]{
			db:       db,
			name:     "goals",
			toEntity: m.GoalToEntity,
			toModel:  m.GoalToModel,
		},
	}
}

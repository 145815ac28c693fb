package mapper

import (
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/model"
)

type JournalMapper struct{}

func NewJournalMapper() *JournalMapper {
	return &JournalMapper{}
}

func (m *JournalMapper) JournalToEntity(j *model.Journal) *entity.JournalEntry {
	if j == nil {
		return nil
	}
	return &entity.JournalEntry{
		Id:          j.Id,
		UserId:      j.UserId,
		Content:     j.Content,
		JournalDate: j.JournalDate,
		CreatedAt:   j.CreatedAt,
	}
}

func (m *JournalMapper) JournalToModel(j *entity.JournalEntry) *model.Journal {
	if j == nil {
		return nil
	}
	return &model.Journal{
		Id:          j.Id,
		UserId:      j.UserId,
		Content:     j.Content,
		JournalDate: j.JournalDate,
		CreatedAt:   j.CreatedAt,
	}
}

func (m *JournalMapper) GoalToEntity(g *model.Goal) *entity.Goal {
	if g == nil {
		return nil
	}
	return &entity.Goal{
		Id:        g.Id,
		UserId:    g.UserId,
		Type:      entity.GoalType(g.Type),
		Content:   g.Content,
		CreatedAt: g.CreatedAt,
	}
}

func (m *JournalMapper) GoalToModel(g *entity.Goal) *model.Goal {
	if g == nil {
		return nil
	}
	return &model.Goal{
		Id:        g.Id,
		UserId:    g.UserId,
		Type:      string(g.Type),
		Content:   g.Content,
		CreatedAt: g.CreatedAt,
	}
}

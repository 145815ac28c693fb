package mapper

import (
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/model"
)

type SummaryMapper struct{}

func NewSummaryMapper() *SummaryMapper {
	return &SummaryMapper{}
}

func (m *SummaryMapper) JournalSummaryToEntity(s *model.JournalSummary) *entity.JournalSummary {
	if s == nil {
		return nil
	}
	return &entity.JournalSummary{
		Id:          s.Id,
		UserId:      s.UserId,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		SummaryText: s.SummaryText,
		InsertedAt:  s.InsertedAt,
	}
}

func (m *SummaryMapper) JournalSummaryToModel(s *entity.JournalSummary) *model.JournalSummary {
	if s == nil {
		return nil
	}
	return &model.JournalSummary{
		Id:          s.Id,
		UserId:      s.UserId,
		StartDate:   s.StartDate,
		EndDate:     s.EndDate,
		SummaryText: s.SummaryText,
		InsertedAt:  s.InsertedAt,
	}
}

func (m *SummaryMapper) ChatSummaryToEntity(s *model.ChatSummary) *entity.ChatSummary {
	if s == nil {
		return nil
	}
	return &entity.ChatSummary{
		Id:          s.Id,
		UserId:      s.UserId,
		SessionId:   s.SessionId,
		SummaryText: s.SummaryText,
		InsertedAt:  s.InsertedAt,
	}
}

func (m *SummaryMapper) ChatSummaryToModel(s *entity.ChatSummary) *model.ChatSummary {
	if s == nil {
		return nil
	}
	return &model.ChatSummary{
		Id:          s.Id,
		UserId:      s.UserId,
		SessionId:   s.SessionId,
		SummaryText: s.SummaryText,
		InsertedAt:  s.InsertedAt,
	}
}

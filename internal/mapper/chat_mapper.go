package mapper

import (
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

// Session Mappers

func (m *ChatMapper) ChatSessionToEntity(s *model.ChatSession) *entity.ChatSession {
	if s == nil {
		return nil
	}
	return &entity.ChatSession{
		Id:        s.SessionId,
		UserId:    s.UserId,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

func (m *ChatMapper) ChatSessionToModel(s *entity.ChatSession) *model.ChatSession {
	if s == nil {
		return nil
	}
	return &model.ChatSession{
		SessionId: s.Id,
		UserId:    s.UserId,
		Notes:     s.Notes,
		CreatedAt: s.CreatedAt,
	}
}

// Message Mappers

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.ChatId,
		SessionId: msg.SessionId,
		UserId:    msg.UserId,
		Role:      entity.ChatRole(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		ChatId:    msg.Id,
		SessionId: msg.SessionId,
		UserId:    msg.UserId,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

// History Mappers

func (m *ChatMapper) ChatHistoryToEntity(h *model.ChatHistory) *entity.ChatHistory {
	if h == nil {
		return nil
	}
	return &entity.ChatHistory{
		Id:        h.Id,
		UserId:    h.UserId,
		Role:      entity.ChatRole(h.Role),
		Content:   h.Content,
		CreatedAt: h.CreatedAt,
	}
}

func (m *ChatMapper) ChatHistoryToModel(h *entity.ChatHistory) *model.ChatHistory {
	if h == nil {
		return nil
	}
	return &model.ChatHistory{
		Id:        h.Id,
		UserId:    h.UserId,
		Role:      string(h.Role),
		Content:   h.Content,
		CreatedAt: h.CreatedAt,
	}
}

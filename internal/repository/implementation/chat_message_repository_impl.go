package implementation

import (
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/mapper"
	"ai-journaling-be/internal/model"
	"ai-journaling-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	*baseRepository[model.ChatMessage, entity.ChatMessage]
}

func NewChatMessageRepository(db *gorm.DB) contract.ChatMessageRepository {
	m := mapper.NewChatMapper()
	return &ChatMessageRepositoryImpl{
		baseRepository: &baseRepository[model.ChatMessage, entity.ChatMessage]{
			db:       db,
			name:     "chat_messages",
			toEntity: m.ChatMessageToEntity,
			toModel:  m.ChatMessageToModel,
		},
	}
}

type ChatHistoryRepositoryImpl struct {
	*baseRepository[model.ChatHistory, entity.ChatHistory]
}

func NewChatHistoryRepository(db *gorm.DB) contract.ChatHistoryRepository {
	m := mapper.NewChatMapper()
	return &ChatHistoryRepositoryImpl{
		baseRepository: &baseRepository[model.ChatHistory, entity.ChatHistory]{
			db:       db,
			name:     "chat_history",
			toEntity: m.ChatHistoryToEntity,
			toModel:  m.ChatHistoryToModel,
		},
	}
}

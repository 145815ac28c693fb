package implementation

import (
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/mapper"
	"ai-journaling-be/internal/model"
	"ai-journaling-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ChatSessionRepositoryImpl struct {
	*baseRepository[model.ChatSession, entity.ChatSession]
}

func NewChatSessionRepository(db *gorm.DB) contract.ChatSessionRepository {
	m := mapper.NewChatMapper()
	return &ChatSessionRepositoryImpl{
		baseRepository: &baseRepository[model.ChatSession, entity.ChatSession]{
			db:       db,
			name:     "chat_sessions",
			toEntity: m.ChatSessionToEntity,
			toModel:  m.ChatSessionToModel,
		},
	}
}

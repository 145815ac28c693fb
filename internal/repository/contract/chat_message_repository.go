package contract

import (
	"context"

	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/repository/specification"
)

type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
}

type ChatHistoryRepository interface {
	Create(ctx context.Context, turn *entity.ChatHistory) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatHistory, error)
}

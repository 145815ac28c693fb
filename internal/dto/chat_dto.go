package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatSessionResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	UserId    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Notes     *string   `json:"notes"`
}

type ListChatSessionsResponse struct {
	Sessions []*ChatSessionResponse `json:"sessions"`
}

type CreateChatSessionResponse struct {
	Session *ChatSessionResponse `json:"session"`
}

type ChatMessageResponse struct {
	ChatId    uuid.UUID `json:"chat_id"`
	SessionId uuid.UUID `json:"session_id"`
	UserId    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ListChatMessagesResponse struct {
	Messages []*ChatMessageResponse `json:"messages"`
}

type SendSessionMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// SendSessionMessageResponse always carries the generated reply. Persisted is
// false when one of the two turns could not be stored.
type SendSessionMessageResponse struct {
	UserMessage *ChatMessageResponse `json:"userMessage"`
	AiMessage   *ChatMessageResponse `json:"aiMessage"`
	Persisted   bool                 `json:"persisted"`
}

type ChatRequest struct {
	Message string  `json:"message" validate:"required"`
	Context *string `json:"context,omitempty"`
}

type ChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatResponse struct {
	Response    string               `json:"response"`
	UserMessage *ChatHistoryResponse `json:"userMessage"`
	AiMessage   *ChatHistoryResponse `json:"aiMessage"`
	Persisted   bool                 `json:"persisted"`
}

type ListChatHistoryResponse struct {
	Messages []*ChatHistoryResponse `json:"messages"`
}

type CreateChatSummaryRequest struct {
	SessionId string `json:"session_id" validate:"required"`
}

type ChatSummaryResponse struct {
	Id          uuid.UUID `json:"id"`
	UserId      uuid.UUID `json:"user_id"`
	SessionId   uuid.UUID `json:"session_id"`
	SummaryText string    `json:"summary_text"`
	InsertedAt  time.Time `json:"inserted_at"`
}

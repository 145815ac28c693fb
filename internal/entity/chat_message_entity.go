package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn inside a chat session.
type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	UserId    uuid.UUID
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}

// ChatHistory is one turn of the session-less conversation, scoped by user only.
type ChatHistory struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Role      ChatRole
	Content   string
	CreatedAt time.Time
}

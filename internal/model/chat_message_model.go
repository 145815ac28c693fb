package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	ChatId    uuid.UUID `gorm:"column:chat_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_session_created,priority:1"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_chat_messages_session_created,priority:2"`
}

func (ChatMessage) TableName() string {
	return "ChatMessages"
}

type ChatHistory struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_history_user_created,priority:1"`
	Role      string    `gorm:"type:varchar(20);not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_chat_history_user_created,priority:2"`
}

func (ChatHistory) TableName() string {
	return "ChatHistory"
}

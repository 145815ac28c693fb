package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	SessionId uuid.UUID `gorm:"column:session_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Notes     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ChatSession) TableName() string {
	return "ChatSessions"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type JournalSummary struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_journal_summaries_window,priority:1"`
	StartDate   time.Time `gorm:"type:date;not null;uniqueIndex:idx_journal_summaries_window,priority:2"`
	EndDate     time.Time `gorm:"type:date;not null;uniqueIndex:idx_journal_summaries_window,priority:3"`
	SummaryText string    `gorm:"type:text;not null"`
	InsertedAt  time.Time `gorm:"not null;default:now()"`
}

func (JournalSummary) TableName() string {
	return "JournalSummaries"
}

type ChatSummary struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_summaries_session,priority:1"`
	SessionId   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_summaries_session,priority:2"`
	SummaryText string    `gorm:"type:text;not null"`
	InsertedAt  time.Time `gorm:"not null;default:now()"`
}

func (ChatSummary) TableName() string {
	return "ChatSummaries"
}

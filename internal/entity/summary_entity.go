package entity

import (
	"time"

	"github.com/google/uuid"
)

// JournalSummary is unique per (UserId, StartDate, EndDate).
type JournalSummary struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	SummaryText string
	InsertedAt  time.Time
}

// ChatSummary is unique per (UserId, SessionId).
type ChatSummary struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	SessionId   uuid.UUID
	SummaryText string
	InsertedAt  time.Time
}

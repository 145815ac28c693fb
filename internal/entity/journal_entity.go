package entity

import (
	"time"

	"github.com/google/uuid"
)

type JournalEntry struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Content     string
	JournalDate time.Time
	CreatedAt   time.Time
}

type GoalType string

const (
	GoalTypeYearly  GoalType = "yearly"
	GoalTypeMonthly GoalType = "monthly"
	GoalTypeWeekly  GoalType = "weekly"
)

type Goal struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Type      GoalType
	Content   string
	CreatedAt time.Time
}

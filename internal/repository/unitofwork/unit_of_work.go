package unitofwork

import (
	"context"

	"ai-journaling-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	JournalRepository() contract.JournalRepository
	GoalRepository() contract.GoalRepository

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	ChatHistoryRepository() contract.ChatHistoryRepository

	JournalSummaryRepository() contract.JournalSummaryRepository
	ChatSummaryRepository() contract.ChatSummaryRepository
	UserProfileRepository() contract.UserProfileRepository
	TherapistInsightRepository() contract.TherapistInsightRepository
}

package unitofwork

import (
	"context"
	"fmt"

	"ai-journaling-be/internal/repository/contract"
	"ai-journaling-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) JournalRepository() contract.JournalRepository {
	return implementation.NewJournalRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GoalRepository() contract.GoalRepository {
	return implementation.NewGoalRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatSessionRepository() contract.ChatSessionRepository {
	return implementation.NewChatSessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatMessageRepository() contract.ChatMessageRepository {
	return implementation.NewChatMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatHistoryRepository() contract.ChatHistoryRepository {
	return implementation.NewChatHistoryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) JournalSummaryRepository() contract.JournalSummaryRepository {
	return implementation.NewJournalSummaryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ChatSummaryRepository() contract.ChatSummaryRepository {
	return implementation.NewChatSummaryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) UserProfileRepository() contract.UserProfileRepository {
	return implementation.NewUserProfileRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TherapistInsightRepository() contract.TherapistInsightRepository {
	return implementation.NewTherapistInsightRepository(u.getDB())
}

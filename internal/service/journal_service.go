package service

import (
	"context"
	"time"

	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/repository/specification"
	"ai-journaling-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IJournalService interface {
	SaveGoalsAndJournal(ctx context.Context, userId uuid.UUID, req *dto.GoalsJournalsRequest) (*dto.MessageResponse, error)
	JournalDates(ctx context.Context, userId uuid.UUID) (*dto.JournalDatesResponse, error)
}

type journalService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
	now        func() time.Time
}

func NewJournalService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IJournalService {
	return &journalService{
		uowFactory: uowFactory,
		logger:     log,
		now:        time.Now,
	}
}

// SaveGoalsAndJournal stores the three goals and today's journal entry in
// one transaction.
func (s *journalService) SaveGoalsAndJournal(ctx context.Context, userId uuid.UUID, req *dto.GoalsJournalsRequest) (*dto.MessageResponse, error) {
	now := s.now().UTC()
	goals := []*entity.Goal{
		{UserId: userId, Type: entity.GoalTypeYearly, Content: req.Goals.Yearly, CreatedAt: now},
		{UserId: userId, Type: entity.GoalTypeMonthly, Content: req.Goals.Monthly, CreatedAt: now},
		{UserId: userId, Type: entity.GoalTypeWeekly, Content: req.Goals.Weekly, CreatedAt: now},
	}
	journal := &entity.JournalEntry{
		UserId:      userId,
		Content:     req.Journal,
		JournalDate: truncateDate(now),
		CreatedAt:   now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.GoalRepository().CreateMany(ctx, goals); err != nil {
		return nil, err
	}
	if err := uow.JournalRepository().Create(ctx, journal); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("JOURNAL", "Goals and journal saved", map[string]interface{}{
		"user_id":    userId.String(),
		"journal_id": journal.Id.String(),
	})
	return &dto.MessageResponse{Message: "Data saved successfully!"}, nil
}

func (s *journalService) JournalDates(ctx context.Context, userId uuid.UUID) (*dto.JournalDatesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	journals, err := uow.JournalRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Select{Fields: []string{"created_at"}},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.JournalDatesResponse{Dates: make([]time.Time, 0, len(journals))}
	for _, j := range journals {
		res.Dates = append(res.Dates, j.CreatedAt)
	}
	return res, nil
}

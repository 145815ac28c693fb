package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-journaling-be/internal/constant"
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/repository/specification"
	"ai-journaling-be/internal/repository/unitofwork"
	"ai-journaling-be/pkg/events"
	"ai-journaling-be/pkg/llm"

	"github.com/google/uuid"
)

type IInsightService interface {
	Generate(ctx context.Context, userId uuid.UUID) (*dto.InsightResponse, error)
	Latest(ctx context.Context, userId uuid.UUID) (*dto.InsightResponse, error)
}

type insightService struct {
	uowFactory   unitofwork.RepositoryFactory
	completer    llm.Completer
	eventService IEventService
	logger       logger.ILogger
	now          func() time.Time
}

func NewInsightService(
	uowFactory unitofwork.RepositoryFactory,
	completer llm.Completer,
	eventService IEventService,
	log logger.ILogger,
) IInsightService {
	return &insightService{
		uowFactory:   uowFactory,
		completer:    completer,
		eventService: eventService,
		logger:       log,
		now:          time.Now,
	}
}

// Generate analyses goals and journals written since the previous insight,
// or everything when there is none yet.
func (s *insightService) Generate(ctx context.Context, userId uuid.UUID) (*dto.InsightResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	last, err := s.latest(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	}
	if last != nil {
		specs = append(specs, specification.CreatedSince{Since: last.CreatedAt})
	}

	goals, err := uow.GoalRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	journals, err := uow.JournalRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(goals) == 0 && len(journals) == 0 {
		return &dto.InsightResponse{Insights: constant.NoInsightData}, nil
	}

	goalLines := make([]string, 0, len(goals))
	for _, g := range goals {
		goalLines = append(goalLines, fmt.Sprintf("- %s: %s", g.Type, g.Content))
	}
	journalLines := make([]string, 0, len(journals))
	for _, j := range journals {
		journalLines = append(journalLines, "- "+j.Content)
	}
	prompt := fmt.Sprintf(constant.InsightPromptV1, strings.Join(goalLines, "\n"), strings.Join(journalLines, "\n"))

	text, err := s.completer.Complete(ctx, constant.PersonaInsightTherapist,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		constant.InsightMaxTokens,
	)
	if err != nil {
		return nil, err
	}

	insight := &entity.TherapistInsight{
		UserId:    userId,
		Content:   text,
		CreatedAt: s.now().UTC(),
	}
	if err := uow.TherapistInsightRepository().Create(ctx, insight); err != nil {
		return nil, err
	}

	s.eventService.Emit(ctx, events.TypeInsightGenerated, map[string]interface{}{
		"user_id":    userId.String(),
		"insight_id": insight.Id.String(),
		"goals":      len(goals),
		"journals":   len(journals),
	})
	return &dto.InsightResponse{Insights: text}, nil
}

func (s *insightService) Latest(ctx context.Context, userId uuid.UUID) (*dto.InsightResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	last, err := s.latest(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if last == nil {
		return &dto.InsightResponse{Insights: constant.NoInsightAvailable}, nil
	}
	return &dto.InsightResponse{Insights: last.Content}, nil
}

func (s *insightService) latest(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.TherapistInsight, error) {
	return uow.TherapistInsightRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

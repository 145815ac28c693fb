package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-journaling-be/internal/constant"
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/entity"
	"ai-journaling-be/internal/pkg/apperror"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/repository/specification"
	"ai-journaling-be/internal/repository/unitofwork"
	"ai-journaling-be/pkg/events"
	"ai-journaling-be/pkg/llm"

	"github.com/google/uuid"
)

// ISummaryService condenses journal windows and chat sessions into stored
// summaries. Re-summarizing the same window or session replaces the text.
type ISummaryService interface {
	CreateJournalSummary(ctx context.Context, userId uuid.UUID, startDate, endDate time.Time) (*dto.JournalSummaryResponse, error)
	GetJournalSummary(ctx context.Context, userId uuid.UUID, startDate, endDate time.Time) (*dto.JournalSummaryResponse, error)
	CreateChatSummary(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ChatSummaryResponse, error)
	ListChatSummaries(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error)
}

type summaryService struct {
	uowFactory   unitofwork.RepositoryFactory
	completer    llm.Completer
	eventService IEventService
	logger       logger.ILogger
	now          func() time.Time
}

func NewSummaryService(
	uowFactory unitofwork.RepositoryFactory,
	completer llm.Completer,
	eventService IEventService,
	log logger.ILogger,
) ISummaryService {
	return &summaryService{
		uowFactory:   uowFactory,
		completer:    completer,
		eventService: eventService,
		logger:       log,
		now:          time.Now,
	}
}

// ParseDateWindow parses both bounds as calendar dates and checks their order.
func ParseDateWindow(start, end string) (time.Time, time.Time, error) {
	startDate, err := time.Parse(specification.DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("start_date must be a date in YYYY-MM-DD format")
	}
	endDate, err := time.Parse(specification.DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, apperror.Validation("end_date must be a date in YYYY-MM-DD format")
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, apperror.Validation("start_date must not be after end_date")
	}
	return startDate, endDate, nil
}

func (s *summaryService) CreateJournalSummary(ctx context.Context, userId uuid.UUID, startDate, endDate time.Time) (*dto.JournalSummaryResponse, error) {
	startDate, endDate = truncateDate(startDate), truncateDate(endDate)
	if endDate.Before(startDate) {
		return nil, apperror.Validation("start_date must not be after end_date")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	journals, err := uow.JournalRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.DateRange{Field: "journal_date", From: startDate, To: endDate},
		specification.OrderBy{Field: "journal_date"},
	)
	if err != nil {
		return nil, err
	}

	// An empty window is still summarized.
	lines := make([]string, 0, len(journals))
	for _, j := range journals {
		lines = append(lines, "- "+j.Content)
	}
	prompt := fmt.Sprintf(constant.JournalSummaryPromptV1,
		startDate.Format(specification.DateLayout),
		endDate.Format(specification.DateLayout),
		strings.Join(lines, "\n"),
	)

	text, err := s.completer.Complete(ctx, constant.PersonaEmpatheticSummarizer,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		constant.JournalSummaryMaxTokens,
	)
	if err != nil {
		return nil, err
	}

	summary := &entity.JournalSummary{
		UserId:      userId,
		StartDate:   startDate,
		EndDate:     endDate,
		SummaryText: text,
		InsertedAt:  s.now().UTC(),
	}
	if err := uow.JournalSummaryRepository().Upsert(ctx, summary); err != nil {
		return nil, err
	}

	s.logger.Info("SUMMARY", "Journal summary stored", map[string]interface{}{
		"user_id":    userId.String(),
		"start_date": startDate.Format(specification.DateLayout),
		"end_date":   endDate.Format(specification.DateLayout),
		"entries":    len(journals),
	})
	s.eventService.Emit(ctx, events.TypeJournalSummaryCreated, map[string]interface{}{
		"user_id":    userId.String(),
		"summary_id": summary.Id.String(),
	})

	return toJournalSummaryResponse(summary), nil
}

func (s *summaryService) GetJournalSummary(ctx context.Context, userId uuid.UUID, startDate, endDate time.Time) (*dto.JournalSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summary, err := uow.JournalSummaryRepository().FindOne(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.ByWindow{StartDate: truncateDate(startDate), EndDate: truncateDate(endDate)},
	)
	if err != nil {
		return nil, err
	}
	if summary == nil {
		return nil, apperror.NotFound("journal summary")
	}
	return toJournalSummaryResponse(summary), nil
}

func (s *summaryService) CreateChatSummary(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.ChatSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Ownership is settled before any message is read.
	if _, err := ownedSession(ctx, uow, userId, sessionId); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.BySessionID{SessionID: sessionId},
		specification.Select{Fields: []string{"role", "content", "created_at"}},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Role, m.Content))
	}
	prompt := fmt.Sprintf(constant.ChatSummaryPromptV1, strings.Join(lines, "\n"))

	text, err := s.completer.Complete(ctx, constant.PersonaConciseSummarizer,
		[]llm.Message{{Role: llm.RoleUser, Content: prompt}},
		constant.ChatSummaryMaxTokens,
	)
	if err != nil {
		return nil, err
	}

	summary := &entity.ChatSummary{
		UserId:      userId,
		SessionId:   sessionId,
		SummaryText: text,
		InsertedAt:  s.now().UTC(),
	}
	if err := uow.ChatSummaryRepository().Upsert(ctx, summary); err != nil {
		return nil, err
	}

	s.logger.Info("SUMMARY", "Chat summary stored", map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": sessionId.String(),
		"messages":   len(messages),
	})
	s.eventService.Emit(ctx, events.TypeChatSummaryCreated, map[string]interface{}{
		"user_id":    userId.String(),
		"session_id": sessionId.String(),
		"summary_id": summary.Id.String(),
	})

	return toChatSummaryResponse(summary), nil
}

func (s *summaryService) ListChatSummaries(ctx context.Context, userId uuid.UUID) ([]*dto.ChatSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	summaries, err := uow.ChatSummaryRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "inserted_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ChatSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		res = append(res, toChatSummaryResponse(summary))
	}
	return res, nil
}

// ownedSession loads a chat session and checks it belongs to userId. A
// missing session is reported the same way as a foreign one.
func ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, userId, sessionId uuid.UUID) (*entity.ChatSession, error) {
	session, err := uow.ChatSessionRepository().FindOne(ctx, specification.BySessionID{SessionID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserId != userId {
		return nil, apperror.AccessDenied("chat session")
	}
	return session, nil
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toJournalSummaryResponse(s *entity.JournalSummary) *dto.JournalSummaryResponse {
	return &dto.JournalSummaryResponse{
		Id:          s.Id,
		UserId:      s.UserId,
		StartDate:   s.StartDate.Format(specification.DateLayout),
		EndDate:     s.EndDate.Format(specification.DateLayout),
		SummaryText: s.SummaryText,
		InsertedAt:  s.InsertedAt,
	}
}

func toChatSummaryResponse(s *entity.ChatSummary) *dto.ChatSummaryResponse {
	return &dto.ChatSummaryResponse{
		Id:          s.Id,
		UserId:      s.UserId,
		SessionId:   s.SessionId,
		SummaryText: s.SummaryText,
		InsertedAt:  s.InsertedAt,
	}
}

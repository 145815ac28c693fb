package service

import (
	"context"
	"sort"
	"time"

	"ai-journaling-be/internal/constant"
	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/internal/repository/specification"
	"ai-journaling-be/internal/repository/unitofwork"
	"ai-journaling-be/pkg/events"

	"github.com/google/uuid"
)

// IBackfillService rebuilds every derived record of a user: one summary per
// chat session, journal summaries over consecutive windows of distinct
// journal dates, then the profile.
type IBackfillService interface {
	RunForUser(ctx context.Context, userId uuid.UUID) (*dto.BackfillReport, error)
	RunAll(ctx context.Context) ([]*dto.BackfillReport, error)
	Enqueue(ctx context.Context, userId uuid.UUID, source string) (*dto.BackfillAcceptedResponse, error)
	EnqueueAll(ctx context.Context, source string) (int, error)
	HandleBackfillRequested(ctx context.Context, event events.Event) error
}

type backfillService struct {
	uowFactory       unitofwork.RepositoryFactory
	summaryService   ISummaryService
	profileService   IProfileService
	publisherService IPublisherService
	logger           logger.ILogger
	windowSize       int
}

func NewBackfillService(
	uowFactory unitofwork.RepositoryFactory,
	summaryService ISummaryService,
	profileService IProfileService,
	publisherService IPublisherService,
	log logger.ILogger,
) IBackfillService {
	return &backfillService{
		uowFactory:       uowFactory,
		summaryService:   summaryService,
		profileService:   profileService,
		publisherService: publisherService,
		logger:           log,
		windowSize:       constant.BackfillJournalWindow,
	}
}

// RunForUser keeps going past individual failures and lists them in the
// report. Only failures to read the source rows abort the run.
func (s *backfillService) RunForUser(ctx context.Context, userId uuid.UUID) (*dto.BackfillReport, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	report := &dto.BackfillReport{UserId: userId}

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	for _, session := range sessions {
		if _, err := s.summaryService.CreateChatSummary(ctx, userId, session.Id); err != nil {
			report.Errors = append(report.Errors, "chat session "+session.Id.String()+": "+err.Error())
			continue
		}
		report.ChatSummaries++
	}

	journals, err := uow.JournalRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Select{Fields: []string{"journal_date"}},
		specification.OrderBy{Field: "journal_date"},
	)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, len(journals))
	for _, j := range journals {
		dates = append(dates, j.JournalDate)
	}
	for _, w := range journalWindows(dates, s.windowSize) {
		if _, err := s.summaryService.CreateJournalSummary(ctx, userId, w[0], w[1]); err != nil {
			report.Errors = append(report.Errors, "journal window "+
				w[0].Format(specification.DateLayout)+".."+w[1].Format(specification.DateLayout)+": "+err.Error())
			continue
		}
		report.JournalSummaries++
	}

	if report.ChatSummaries+report.JournalSummaries > 0 {
		if _, err := s.profileService.Regenerate(ctx, userId); err != nil {
			report.Errors = append(report.Errors, "profile: "+err.Error())
		} else {
			report.ProfileUpdated = true
		}
	}

	s.logger.Info("BACKFILL", "Backfill finished", map[string]interface{}{
		"user_id":           userId.String(),
		"chat_summaries":    report.ChatSummaries,
		"journal_summaries": report.JournalSummaries,
		"profile_updated":   report.ProfileUpdated,
		"errors":            len(report.Errors),
	})
	return report, nil
}

func (s *backfillService) RunAll(ctx context.Context) ([]*dto.BackfillReport, error) {
	userIds, err := s.userIds(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*dto.BackfillReport, 0, len(userIds))
	for _, id := range userIds {
		report, err := s.RunForUser(ctx, id)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func (s *backfillService) Enqueue(ctx context.Context, userId uuid.UUID, source string) (*dto.BackfillAcceptedResponse, error) {
	job := dto.BackfillJobMessage{
		JobId:       uuid.New(),
		UserId:      userId,
		Source:      source,
		RequestedAt: time.Now().UTC(),
	}
	if err := s.publisherService.Publish(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("BACKFILL", "Backfill job queued", map[string]interface{}{
		"job_id":  job.JobId.String(),
		"user_id": userId.String(),
		"source":  source,
	})
	return &dto.BackfillAcceptedResponse{Message: "Backfill queued", JobId: job.JobId}, nil
}

func (s *backfillService) EnqueueAll(ctx context.Context, source string) (int, error) {
	userIds, err := s.userIds(ctx)
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, id := range userIds {
		if _, err := s.Enqueue(ctx, id, source); err != nil {
			return queued, err
		}
		queued++
	}
	return queued, nil
}

// HandleBackfillRequested queues a job for the user named in the event.
// Events without a usable user id are dropped.
func (s *backfillService) HandleBackfillRequested(ctx context.Context, event events.Event) error {
	userId, err := uuid.Parse(events.String(event, "user_id"))
	if err != nil {
		s.logger.Warn("BACKFILL", "Ignoring backfill request without user id", map[string]interface{}{
			"payload": event.Payload(),
		})
		return nil
	}
	_, err = s.Enqueue(ctx, userId, dto.BackfillSourceNATS)
	return err
}

func (s *backfillService) userIds(ctx context.Context) ([]uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	users, err := uow.UserRepository().FindAll(ctx,
		specification.Select{Fields: []string{"id"}},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.Id)
	}
	return ids, nil
}

// journalWindows groups the distinct calendar dates into consecutive runs
// of size dates and returns the first and last date of each run.
func journalWindows(dates []time.Time, size int) [][2]time.Time {
	if size <= 0 {
		size = constant.BackfillJournalWindow
	}

	seen := make(map[string]bool, len(dates))
	uniq := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := truncateDate(d)
		key := day.Format(specification.DateLayout)
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, day)
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i].Before(uniq[j]) })

	windows := make([][2]time.Time, 0, (len(uniq)+size-1)/size)
	for i := 0; i < len(uniq); i += size {
		end := i + size - 1
		if end >= len(uniq) {
			end = len(uniq) - 1
		}
		windows = append(windows, [2]time.Time{uniq[i], uniq[end]})
	}
	return windows
}

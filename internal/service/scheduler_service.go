package service

import (
	"context"

	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

type ISchedulerService interface {
	Start() error
	Stop() context.Context
}

type schedulerService struct {
	spec            string
	cron            *cron.Cron
	backfillService IBackfillService
	logger          logger.ILogger
}

// NewSchedulerService runs the backfill for every user on spec, a standard
// five-field cron expression. An empty spec disables the schedule.
func NewSchedulerService(spec string, backfillService IBackfillService, log logger.ILogger) ISchedulerService {
	return &schedulerService{
		spec:            spec,
		cron:            cron.New(),
		backfillService: backfillService,
		logger:          log,
	}
}

func (s *schedulerService) Start() error {
	if s.spec == "" {
		s.logger.Info("SCHEDULER", "Scheduled backfill disabled", nil)
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.runBackfill); err != nil {
		return err
	}
	s.cron.Start()

	s.logger.Info("SCHEDULER", "Scheduled backfill enabled", map[string]interface{}{
		"cron": s.spec,
	})
	return nil
}

func (s *schedulerService) Stop() context.Context {
	return s.cron.Stop()
}

func (s *schedulerService) runBackfill() {
	queued, err := s.backfillService.EnqueueAll(context.Background(), dto.BackfillSourceCron)
	if err != nil {
		s.logger.Error("SCHEDULER", "Scheduled backfill failed", map[string]interface{}{
			"queued": queued,
			"error":  err.Error(),
		})
		return
	}
	s.logger.Info("SCHEDULER", "Scheduled backfill queued", map[string]interface{}{
		"queued": queued,
	})
}

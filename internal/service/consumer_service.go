package service

import (
	"context"
	"encoding/json"

	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber      message.Subscriber
	topicName       string
	backfillService IBackfillService
	logger          logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	backfillService IBackfillService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber:      subscriber,
		topicName:       topicName,
		backfillService: backfillService,
		logger:          log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage acks every job. A failed run is retried by the next
// scheduled backfill rather than redelivered.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var job dto.BackfillJobMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		cs.logger.Error("CONSUMER", "Failed to unmarshal backfill job", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Info("CONSUMER", "Processing backfill job", map[string]interface{}{
		"job_id":  job.JobId.String(),
		"user_id": job.UserId.String(),
		"source":  job.Source,
	})

	report, err := cs.backfillService.RunForUser(ctx, job.UserId)
	if err != nil {
		cs.logger.Error("CONSUMER", "Backfill job failed", map[string]interface{}{
			"job_id": job.JobId.String(),
			"error":  err.Error(),
		})
		return
	}

	if len(report.Errors) > 0 {
		cs.logger.Warn("CONSUMER", "Backfill job finished with errors", map[string]interface{}{
			"job_id": job.JobId.String(),
			"errors": report.Errors,
		})
	}
}

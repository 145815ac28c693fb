package service

import (
	"context"
	"testing"
	"time"

	"ai-journaling-be/internal/dto"
	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runRecorder struct {
	runs chan uuid.UUID
}

func (r *runRecorder) RunForUser(ctx context.Context, userId uuid.UUID) (*dto.BackfillReport, error) {
	r.runs <- userId
	return &dto.BackfillReport{UserId: userId}, nil
}

func (r *runRecorder) RunAll(ctx context.Context) ([]*dto.BackfillReport, error) { return nil, nil }

func (r *runRecorder) Enqueue(ctx context.Context, userId uuid.UUID, source string) (*dto.BackfillAcceptedResponse, error) {
	return nil, nil
}

func (r *runRecorder) EnqueueAll(ctx context.Context, source string) (int, error) { return 0, nil }

func (r *runRecorder) HandleBackfillRequested(ctx context.Context, event events.Event) error {
	return nil
}

func TestConsumerRunsQueuedBackfill(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := &runRecorder{runs: make(chan uuid.UUID, 2)}
	consumer := NewConsumerService(pubSub, "backfill", recorder, logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(pubSub, "backfill")
	require.NoError(t, pubSub.Publish("backfill", message.NewMessage(watermill.NewUUID(), []byte("not json"))))

	userId := uuid.New()
	require.NoError(t, publisher.Publish(ctx, dto.BackfillJobMessage{
		JobId:       uuid.New(),
		UserId:      userId,
		Source:      dto.BackfillSourceHTTP,
		RequestedAt: time.Now(),
	}))

	select {
	case got := <-recorder.runs:
		assert.Equal(t, userId, got)
	case <-time.After(2 * time.Second):
		t.Fatal("backfill job was not consumed")
	}
}

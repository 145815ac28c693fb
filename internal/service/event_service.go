package service

import (
	"context"

	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/pkg/events"
)

// EventPublisher is implemented by the NATS publisher.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IEventService emits domain events. Emitting never fails the caller.
type IEventService interface {
	Emit(ctx context.Context, eventType string, data map[string]interface{})
}

type fanOut []EventPublisher

// FanOut publishes to every non-nil publisher and returns the first error.
// The result is nil when no publisher remains.
func FanOut(publishers ...EventPublisher) EventPublisher {
	var out fanOut
	for _, p := range publishers {
		if p != nil {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (f fanOut) Publish(ctx context.Context, event events.Event) error {
	var first error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type eventService struct {
	publisher EventPublisher
	logger    logger.ILogger
}

// NewEventService accepts a nil publisher, in which case events are dropped.
func NewEventService(publisher EventPublisher, log logger.ILogger) IEventService {
	return &eventService{
		publisher: publisher,
		logger:    log,
	}
}

func (s *eventService) Emit(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.New(eventType, data)); err != nil {
		s.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

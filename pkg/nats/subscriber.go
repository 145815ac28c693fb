package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-journaling-be/internal/pkg/logger"
	"ai-journaling-be/pkg/events"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventHandler is a function that processes an event.
type EventHandler func(ctx context.Context, event events.Event) error

// Subscriber handles listening for events from NATS.
type Subscriber struct {
	nc      *nats.Conn
	js      jetstream.JetStream
	log     logger.ILogger
	consume []jetstream.ConsumeContext
}

func NewSubscriber(url string, log logger.ILogger) (*Subscriber, error) {
	nc, js, err := connect(url)
	if err != nil {
		return nil, err
	}
	return &Subscriber{nc: nc, js: js, log: log}, nil
}

// DecodeEvent rebuilds an event from a message body. Bodies without an
// envelope are treated as bare payloads of the subject's event type.
func DecodeEvent(subject string, body []byte) (events.Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if env.Type == "" && env.Data == nil {
		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, err
		}
		env.Data = payload
	}
	if env.Type == "" {
		env.Type = EventType(subject)
	}
	if env.OccurredAt.IsZero() {
		env.OccurredAt = time.Now().UTC()
	}
	return events.BaseEvent{Type: env.Type, Data: env.Data, OccurredAt: env.OccurredAt}, nil
}

// Subscribe registers a handler for a specific event subject pattern.
// It uses a persistent consumer (Durable) to ensure no messages are lost.
func (s *Subscriber) Subscribe(ctx context.Context, subject string, durableName string, handler EventHandler) error {
	consumer, err := s.js.CreateOrUpdateConsumer(ctx, StreamName, jetstream.ConsumerConfig{
		Durable:       durableName,
		FilterSubject: subject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		MaxDeliver:    5,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer: %w", err)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		event, err := DecodeEvent(msg.Subject(), msg.Data())
		if err != nil {
			s.log.Error("NATS", "dropping undecodable event", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err,
			})
			_ = msg.Term()
			return
		}

		if err := handler(ctx, event); err != nil {
			s.log.Error("NATS", "event handler failed", map[string]interface{}{
				"subject": msg.Subject(),
				"error":   err,
			})
			_ = msg.Nak()
			return
		}

		_ = msg.Ack()
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	s.consume = append(s.consume, cc)

	s.log.Info("NATS", "subscribed", map[string]interface{}{
		"subject": subject,
		"durable": durableName,
	})
	return nil
}

// Close stops consumers and closes the connection.
func (s *Subscriber) Close() {
	for _, cc := range s.consume {
		cc.Stop()
	}
	if s.nc != nil {
		s.nc.Close()
	}
}

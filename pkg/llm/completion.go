package llm

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Completer is what the pipeline depends on: persona + history in, text out.
type Completer interface {
	Complete(ctx context.Context, persona string, history []Message, maxTokens int, opts ...Option) (string, error)
}

// CompletionClient puts the persona in front of the history, enforces the
// output cap and normalizes every failure into a CompletionError.
type CompletionClient struct {
	provider LLMProvider
}

var _ Completer = (*CompletionClient)(nil)

func NewCompletionClient(provider LLMProvider) *CompletionClient {
	return &CompletionClient{provider: provider}
}

func (c *CompletionClient) Complete(ctx context.Context, persona string, history []Message, maxTokens int, opts ...Option) (string, error) {
	ctx, span := otel.Tracer("llm").Start(ctx, "llm.complete")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", c.provider.Name()),
		attribute.Int("llm.max_tokens", maxTokens),
		attribute.Int("llm.history_len", len(history)),
	)

	messages := make([]Message, 0, len(history)+1)
	if strings.TrimSpace(persona) != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: persona})
	}
	messages = append(messages, history...)

	callOpts := append([]Option{WithMaxTokens(maxTokens)}, opts...)
	text, err := c.provider.Chat(ctx, messages, callOpts...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", NewCompletionError(c.provider.Name(), KindTransport, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		err := NewCompletionError(c.provider.Name(), KindMalformed, errors.New("empty completion"))
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty completion")
		return "", err
	}

	return text, nil
}

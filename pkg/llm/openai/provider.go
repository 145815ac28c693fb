package openai

import (
	"ai-journaling-be/pkg/llm"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const DefaultModel = "gpt-4o-mini"

type chatCompletions interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

type OpenAIProvider struct {
	completions chatCompletions
	model       string
}

var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider talks to any OpenAI compatible /chat/completions endpoint.
// Retries are disabled; a failed completion fails the request.
func NewOpenAIProvider(apiKey, baseURL, model string, timeout time.Duration) (*OpenAIProvider, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai: api key required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	client := openai.NewClient(opts...)
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	return &OpenAIProvider{
		completions: &client.Chat.Completions,
		model:       model,
	}, nil
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    toOpenAIMessages(history),
		Temperature: openai.Float(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(options.MaxTokens))
	}

	completion, err := p.completions.New(ctx, params)
	if err != nil {
		return "", llm.NewCompletionError(p.Name(), classify(err), err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", llm.NewCompletionError(p.Name(), llm.KindMalformed, errors.New("no choices in response"))
	}

	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", llm.NewCompletionError(p.Name(), llm.KindMalformed,
			fmt.Errorf("empty content (finish_reason=%s)", completion.Choices[0].FinishReason))
	}

	return content, nil
}

func toOpenAIMessages(history []llm.Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case llm.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case llm.RoleAssistant, "model":
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			out = append(out, openai.UserMessage(msg.Content))
		}
	}
	return out
}

func classify(err error) llm.ErrorKind {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return llm.KindFromStatus(apiErr.StatusCode)
	}
	return llm.KindTransport
}

package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pablasso/lessonplan/internal/logging"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// StreamChunkTimeout bounds the wait for the next chunk of a reply.
const StreamChunkTimeout = 60 * time.Second

// OpenAIService streams replies from an OpenAI-compatible chat completions
// endpoint.
type OpenAIService struct {
	client       *openai.Client
	model        string
	systemPrompt string
	chunkTimeout time.Duration
}

// NewOpenAIService creates a service for opts. BaseURL may point at any
// compatible server; empty uses the OpenAI default.
func NewOpenAIService(opts Options) *OpenAIService {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &OpenAIService{
		client:       openai.NewClientWithConfig(cfg),
		model:        model,
		systemPrompt: opts.SystemPrompt,
		chunkTimeout: StreamChunkTimeout,
	}
}

// Stream implements Service.
func (s *OpenAIService) Stream(ctx context.Context, history []Message) (<-chan Event, error) {
	req := openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: s.buildMessages(history),
		Stream:   true,
	}

	ctx, cancel := context.WithCancel(ctx)
	stream, err := s.client.CreateChatCompletionStream(ctx, req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start chat completion: %w", err)
	}

	log := logging.Named("chat.openai")
	log.Debug("stream started", zap.String("model", s.model), zap.Int("messages", len(req.Messages)))

	events := make(chan Event, 100)

	go func() {
		defer close(events)
		defer cancel()
		defer stream.Close()

		// Cancel the request if no chunk arrives in time.
		timer := time.AfterFunc(s.chunkTimeout, cancel)
		defer timer.Stop()

		for {
			response, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				events <- Event{Type: EventDone}
				return
			}
			if err != nil {
				if ctx.Err() != nil && !timer.Stop() {
					err = fmt.Errorf("stream timed out waiting for the model: %w", err)
				}
				log.Debug("stream failed", zap.Error(err))
				events <- errorEvent(err)
				return
			}
			timer.Reset(s.chunkTimeout)

			if len(response.Choices) == 0 {
				continue
			}

			choice := response.Choices[0]
			if choice.Delta.Content != "" {
				events <- Event{Type: EventText, Text: choice.Delta.Content}
			}
		}
	}()

	return events, nil
}

func (s *OpenAIService) buildMessages(history []Message) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	if s.systemPrompt != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: s.systemPrompt,
		})
	}
	for _, m := range history {
		if m.Content == "" {
			continue
		}
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return msgs
}

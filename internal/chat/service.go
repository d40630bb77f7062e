// Package chat talks to the assistant behind the chat panel. Backends turn a
// transcript into a stream of events; the package never interprets what the
// assistant says.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// EventType classifies a stream event.
type EventType string

const (
	EventText  EventType = "text"  // a chunk of assistant text
	EventDone  EventType = "done"  // the reply is complete
	EventError EventType = "error" // the reply failed; Err is set
)

// Event is one item in a reply stream. The channel is closed after a done or
// error event.
type Event struct {
	Type EventType
	Text string
	Err  error
}

// Service streams assistant replies. history ends with the user's newest
// message.
type Service interface {
	Stream(ctx context.Context, history []Message) (<-chan Event, error)
}

// Provider names.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderDemo   = "demo"
	ProviderNone   = "none"
)

var (
	// ErrNoProvider means chat has been turned off in config.
	ErrNoProvider = errors.New("chat is disabled (chat.provider is \"none\")")
	// ErrMissingAPIKey means the OpenAI-compatible backend has no key.
	ErrMissingAPIKey = errors.New("no API key configured: set LP_CHAT_API_KEY or OPENAI_API_KEY")
)

// Options select and configure a backend.
type Options struct {
	Provider     string
	Model        string
	BaseURL      string
	APIKey       string
	SystemPrompt string
}

// NewService builds the backend named by opts.Provider.
func NewService(opts Options) (Service, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case ProviderOpenAI, "":
		if opts.APIKey == "" && opts.BaseURL == "" {
			return nil, ErrMissingAPIKey
		}
		return NewOpenAIService(opts), nil
	case ProviderClaude:
		if !IsClaudeAvailable() {
			return nil, errClaudeNotFound
		}
		return NewClaudeService(opts.SystemPrompt), nil
	case ProviderDemo:
		return NewDemoService(DefaultDemoDelay), nil
	case ProviderNone:
		return nil, ErrNoProvider
	default:
		return nil, fmt.Errorf("unknown chat provider %q (want openai, claude, demo, or none)", opts.Provider)
	}
}

// Collect drains a stream and returns the full reply text.
func Collect(events <-chan Event) (string, error) {
	var b strings.Builder
	for ev := range events {
		switch ev.Type {
		case EventText:
			b.WriteString(ev.Text)
		case EventError:
			return b.String(), ev.Err
		}
	}
	return b.String(), nil
}

// errorEvent builds an error event, filling in a generic error if err is nil.
func errorEvent(err error) Event {
	if err == nil {
		err = errors.New("unknown error")
	}
	return Event{Type: EventError, Text: err.Error(), Err: err}
}

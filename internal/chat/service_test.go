package chat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	t.Run("none disables chat", func(t *testing.T) {
		_, err := NewService(Options{Provider: "none"})
		assert.ErrorIs(t, err, ErrNoProvider)
	})

	t.Run("openai needs a key or endpoint", func(t *testing.T) {
		_, err := NewService(Options{Provider: "openai"})
		assert.ErrorIs(t, err, ErrMissingAPIKey)

		svc, err := NewService(Options{Provider: "OpenAI", APIKey: "sk-test"})
		require.NoError(t, err)
		assert.IsType(t, &OpenAIService{}, svc)

		svc, err = NewService(Options{Provider: "openai", BaseURL: "http://localhost:11434/v1"})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("demo needs nothing", func(t *testing.T) {
		svc, err := NewService(Options{Provider: "demo"})
		require.NoError(t, err)
		assert.IsType(t, &DemoService{}, svc)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewService(Options{Provider: "carrier-pigeon"})
		assert.ErrorContains(t, err, "unknown chat provider")
	})
}

func TestCollect(t *testing.T) {
	ch := make(chan Event, 4)
	ch <- Event{Type: EventText, Text: "Hello"}
	ch <- Event{Type: EventText, Text: ", class"}
	ch <- Event{Type: EventDone}
	close(ch)

	text, err := Collect(ch)
	require.NoError(t, err)
	assert.Equal(t, "Hello, class", text)
}

func TestCollect_Error(t *testing.T) {
	boom := errors.New("boom")
	ch := make(chan Event, 2)
	ch <- Event{Type: EventText, Text: "partial"}
	ch <- errorEvent(boom)
	close(ch)

	text, err := Collect(ch)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", text)
}

func TestErrorEvent_NilErr(t *testing.T) {
	ev := errorEvent(nil)
	assert.Equal(t, EventError, ev.Type)
	assert.EqualError(t, ev.Err, "unknown error")
}

package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(content string) string {
	return fmt.Sprintf(`{"id":"c1","object":"chat.completion.chunk","created":1,"model":"test","choices":[{"index":0,"delta":{"role":"assistant","content":%q},"finish_reason":null}]}`, content)
}

type capturedRequest struct {
	Model    string `json:"model"`
	Stream   bool   `json:"stream"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newCompletionServer(t *testing.T, chunks []string, got *capturedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, c := range chunks {
			fmt.Fprintf(w, "data: %s\n\n", c)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIService_Stream(t *testing.T) {
	var got capturedRequest
	srv := newCompletionServer(t, []string{chunk("Start with "), chunk("a warm-up quiz.")}, &got)

	svc := NewOpenAIService(Options{
		BaseURL:      srv.URL + "/v1",
		APIKey:       "test",
		Model:        "test-model",
		SystemPrompt: "You help teachers.",
	})

	events, err := svc.Stream(context.Background(), []Message{
		{Role: RoleUser, Content: "How do I open a lesson on fractions?"},
		{Role: RoleAssistant, Content: ""},
	})
	require.NoError(t, err)

	text, err := Collect(events)
	require.NoError(t, err)
	assert.Equal(t, "Start with a warm-up quiz.", text)

	assert.Equal(t, "test-model", got.Model)
	assert.True(t, got.Stream)
	require.Len(t, got.Messages, 2, "empty placeholder is not sent")
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "You help teachers.", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestOpenAIService_EndsWithDone(t *testing.T) {
	srv := newCompletionServer(t, []string{chunk("ok")}, nil)
	svc := NewOpenAIService(Options{BaseURL: srv.URL + "/v1", APIKey: "test"})

	events, err := svc.Stream(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)

	var types []EventType
	for ev := range events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []EventType{EventText, EventDone}, types)
}

func TestOpenAIService_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":{"message":"bad key","type":"invalid_request_error"}}`)
	}))
	t.Cleanup(srv.Close)

	svc := NewOpenAIService(Options{BaseURL: srv.URL + "/v1", APIKey: "nope"})
	_, err := svc.Stream(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	assert.ErrorContains(t, err, "bad key")
}

func TestOpenAIService_ChunkTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "data: %s\n\n", chunk("thinking"))
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	svc := NewOpenAIService(Options{BaseURL: srv.URL + "/v1", APIKey: "test"})
	svc.chunkTimeout = 50 * time.Millisecond

	events, err := svc.Stream(context.Background(), []Message{{Role: RoleUser, Content: "hi"}})
	require.NoError(t, err)

	text, err := Collect(events)
	assert.Equal(t, "thinking", text)
	assert.Error(t, err)
}

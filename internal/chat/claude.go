package chat

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/pablasso/lessonplan/internal/logging"
	"go.uber.org/zap"
)

// CommandContext is the function used to create exec.Cmd instances.
// It can be replaced in tests to mock command execution.
var CommandContext = exec.CommandContext

var errClaudeNotFound = errors.New("Claude Code CLI not found. Install it: https://claude.ai/code")

// IsClaudeAvailable checks if the claude command exists in PATH.
func IsClaudeAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

// ClaudeService streams replies from the Claude Code CLI. Each message is a
// separate `claude -p` invocation; follow-ups pass --resume with the session
// ID reported by the previous reply, so only the newest user message is sent.
type ClaudeService struct {
	systemPrompt string

	mu        sync.Mutex
	sessionID string
}

// NewClaudeService creates a CLI-backed service.
func NewClaudeService(systemPrompt string) *ClaudeService {
	return &ClaudeService{systemPrompt: systemPrompt}
}

// SessionID returns the session used for --resume.
func (c *ClaudeService) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Stream implements Service.
func (c *ClaudeService) Stream(ctx context.Context, history []Message) (<-chan Event, error) {
	prompt := lastUserMessage(history)
	if prompt == "" {
		return nil, errors.New("no user message to send")
	}

	args := []string{
		"-p", prompt,
		"--output-format", "stream-json",
		"--verbose",
		"--include-partial-messages",
	}
	if c.systemPrompt != "" {
		args = append(args, "--append-system-prompt", c.systemPrompt)
	}
	if id := c.SessionID(); id != "" {
		args = append(args, "--resume", id)
	}

	cmd := CommandContext(ctx, "claude", args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start claude: %w", err)
	}

	log := logging.Named("chat.claude")
	log.Debug("invocation started", zap.Bool("resume", c.SessionID() != ""))

	events := make(chan Event, 100)

	go func() {
		defer close(events)

		scanner := bufio.NewScanner(stdout)
		// Increase buffer size for large JSON lines
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)

		finished := false
		for scanner.Scan() {
			line := scanner.Text()

			if isSessionExpiredError(line) {
				c.mu.Lock()
				c.sessionID = ""
				c.mu.Unlock()
				events <- errorEvent(errors.New("session expired; send your message again to start a new one"))
				finished = true
				break
			}

			event, sessionID := parseStreamLine(line)
			if sessionID != "" {
				c.mu.Lock()
				c.sessionID = sessionID
				c.mu.Unlock()
			}
			if event.Type == "" {
				continue
			}
			events <- event
			if event.Type == EventDone || event.Type == EventError {
				finished = true
				break
			}
		}

		if err := scanner.Err(); err != nil && !finished {
			events <- errorEvent(fmt.Errorf("stream read error: %w", err))
			finished = true
		}

		waitErr := cmd.Wait()
		if !finished {
			if ctx.Err() != nil {
				events <- errorEvent(ctx.Err())
			} else if waitErr != nil {
				events <- errorEvent(fmt.Errorf("claude command failed: %w", waitErr))
			} else {
				events <- Event{Type: EventDone}
			}
		}
		log.Debug("invocation finished", zap.Error(waitErr))
	}()

	return events, nil
}

func lastUserMessage(history []Message) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			return history[i].Content
		}
	}
	return ""
}

// isSessionExpiredError checks if the output indicates an expired session.
func isSessionExpiredError(output string) bool {
	lower := strings.ToLower(output)
	return strings.Contains(lower, "session not found") ||
		strings.Contains(lower, "session expired") ||
		strings.Contains(lower, "invalid session")
}

// parseStreamLine converts one stream-json line to an event and the session
// ID it carries, if any. Lines that carry nothing for the transcript yield an
// event with an empty Type.
//
//   - {"type":"system","subtype":"init","session_id":"uuid"} - session start
//   - {"type":"stream_event","event":{"type":"content_block_delta",...}} - text
//   - {"type":"result","session_id":"uuid","is_error":false,"result":"..."} - completion
func parseStreamLine(line string) (Event, string) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Event{}, ""
	}

	sessionID, _ := raw["session_id"].(string)
	eventType, _ := raw["type"].(string)

	switch eventType {
	case "stream_event":
		event, ok := raw["event"].(map[string]interface{})
		if !ok {
			return Event{}, sessionID
		}
		if t, _ := event["type"].(string); t != "content_block_delta" {
			return Event{}, sessionID
		}
		delta, _ := event["delta"].(map[string]interface{})
		if deltaType, _ := delta["type"].(string); deltaType == "text_delta" {
			text, _ := delta["text"].(string)
			return Event{Type: EventText, Text: text}, sessionID
		}

	case "result":
		if isError, _ := raw["is_error"].(bool); isError {
			msg, _ := raw["result"].(string)
			if msg == "" {
				msg = "claude returned an error"
			}
			return errorEvent(errors.New(msg)), sessionID
		}
		return Event{Type: EventDone}, sessionID
	}

	return Event{}, sessionID
}

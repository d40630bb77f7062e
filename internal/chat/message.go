package chat

// Role tags who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the transcript.
type Message struct {
	Role    Role
	Content string
}

// Transcript is an append-only, display-only list of messages.
type Transcript struct {
	messages []Message
}

// Append adds a message to the end.
func (t *Transcript) Append(role Role, content string) {
	t.messages = append(t.messages, Message{Role: role, Content: content})
}

// AppendToLast adds streamed text to the last message if it has the given
// role, otherwise starts a new message.
func (t *Transcript) AppendToLast(role Role, text string) {
	if n := len(t.messages); n > 0 && t.messages[n-1].Role == role {
		t.messages[n-1].Content += text
		return
	}
	t.Append(role, text)
}

// DropTrailingEmpty removes the last message if it has no content.
func (t *Transcript) DropTrailingEmpty() {
	if n := len(t.messages); n > 0 && t.messages[n-1].Content == "" {
		t.messages = t.messages[:n-1]
	}
}

// Messages returns a copy of the transcript.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// LastAssistant returns the most recent assistant reply.
func (t *Transcript) LastAssistant() (string, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleAssistant && t.messages[i].Content != "" {
			return t.messages[i].Content, true
		}
	}
	return "", false
}

// LastUser returns the most recent user message.
func (t *Transcript) LastUser() (string, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleUser {
			return t.messages[i].Content, true
		}
	}
	return "", false
}

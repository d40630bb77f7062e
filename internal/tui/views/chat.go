package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pablasso/lessonplan/internal/chat"
	"github.com/pablasso/lessonplan/internal/display"
	"github.com/pablasso/lessonplan/internal/tui/components"
	"github.com/pablasso/lessonplan/internal/tui/styles"
	"go.uber.org/zap"
)

// ChatConfig holds initialization parameters for the chat panel.
type ChatConfig struct {
	Service chat.Service
	// DisabledReason is shown instead of the input when Service is nil.
	DisabledReason string
	// MarkdownStyle is the glamour style for finished replies.
	MarkdownStyle string
	Logger        *zap.Logger
}

// ChatModel is the assistant panel: a transcript and a one-line input.
type ChatModel struct {
	service        chat.Service
	disabledReason string
	logger         *zap.Logger

	transcript *chat.Transcript
	streaming  bool
	lastErr    string

	input    textinput.Model
	focused  bool
	viewport components.ScrollViewport
	spinner  spinner.Model

	// Finished assistant replies rendered as Markdown, keyed by transcript
	// index. Dropped when the width changes.
	markdownStyle string
	rendered      map[int]string
	renderWidth   int

	eventChan chan chat.Event

	// Context for cancellation
	ctx          context.Context
	cancel       context.CancelFunc
	cancelStream context.CancelFunc

	width  int
	height int
}

// stoppedText is shown when the user stops a reply.
const stoppedText = "Stopped"

// StreamEventMsg wraps a chat event for the Update loop.
type StreamEventMsg struct {
	Event chat.Event
}

// NewChatModel creates the chat panel.
func NewChatModel(cfg ChatConfig) ChatModel {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	ti := textinput.New()
	ti.Placeholder = "Ask for lesson plan ideas..."
	ti.Prompt = "› "
	ti.CharLimit = 2000

	ctx, cancel := context.WithCancel(context.Background())

	return ChatModel{
		service:        cfg.Service,
		disabledReason: cfg.DisabledReason,
		logger:         logger,
		transcript:     &chat.Transcript{},
		input:          ti,
		viewport:       components.NewScrollViewport(40, 10),
		spinner:        s,
		markdownStyle:  cfg.MarkdownStyle,
		rendered:       make(map[int]string),
		eventChan:      make(chan chat.Event, 100),
		ctx:            ctx,
		cancel:         cancel,
	}
}

// Init implements tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.streaming {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case StreamEventMsg:
		if m.handleStreamEvent(msg.Event) {
			return m, nil
		}
		return m, m.listenForEvents()

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.focused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleStreamEvent applies one event and reports whether the stream ended.
func (m *ChatModel) handleStreamEvent(event chat.Event) bool {
	switch event.Type {
	case chat.EventText:
		m.transcript.AppendToLast(chat.RoleAssistant, event.Text)
		m.refresh()
		return false
	case chat.EventError:
		text := event.Text
		if text == "" {
			text = "Unknown error"
		}
		m.finishStream(text)
		return true
	default:
		m.finishStream("")
		return true
	}
}

func (m *ChatModel) finishStream(errText string) {
	if m.cancelStream != nil {
		m.cancelStream()
		m.cancelStream = nil
	}
	m.streaming = false
	m.lastErr = errText
	m.transcript.DropTrailingEmpty()
	if errText != "" {
		m.logger.Warn("chat reply failed", zap.String("error", errText))
	}
	m.refresh()
}

func (m ChatModel) handleKeyPress(msg tea.KeyMsg) (ChatModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.service == nil || m.streaming {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		return m.sendMessage(text)

	case "esc":
		if m.streaming && m.cancelStream != nil {
			m.cancelStream()
		}
		return m, nil

	case "ctrl+r":
		if m.service == nil || m.streaming || m.lastErr == "" {
			return m, nil
		}
		return m.retry()

	case "ctrl+y":
		reply, ok := m.transcript.LastAssistant()
		if !ok || m.streaming {
			return m, nil
		}
		return m, copyCmd("reply", reply)

	case "up", "down", "pgup", "pgdown", "home", "end", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if m.service == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// sendMessage appends the user's message and starts streaming the reply.
func (m ChatModel) sendMessage(text string) (ChatModel, tea.Cmd) {
	m.input.Reset()
	m.transcript.Append(chat.RoleUser, text)
	return m.requestReply()
}

// retry asks the last question again after a failed reply. If the failure
// left no partial reply the question is already last in the transcript and
// is reused; otherwise it is asked again as a new message.
func (m ChatModel) retry() (ChatModel, tea.Cmd) {
	question, ok := m.transcript.LastUser()
	if !ok {
		return m, nil
	}
	if last := m.transcript.Messages()[m.transcript.Len()-1]; last.Role != chat.RoleUser {
		m.transcript.Append(chat.RoleUser, question)
	}
	m.logger.Debug("retrying chat message")
	return m.requestReply()
}

// requestReply streams a reply to the transcript as it stands.
func (m ChatModel) requestReply() (ChatModel, tea.Cmd) {
	m.lastErr = ""

	history := m.transcript.Messages()
	m.transcript.Append(chat.RoleAssistant, "")
	m.streaming = true
	m.viewport.SetAutoScroll(true)
	m.refresh()

	ctx, cancel := context.WithCancel(m.ctx)
	m.cancelStream = cancel

	m.logger.Debug("chat message sent", zap.Int("history", len(history)))

	service := m.service
	start := func() tea.Msg {
		events, err := service.Stream(ctx, history)
		if err != nil {
			// Reported through the channel so the pending listener sees it.
			event := chat.Event{Type: chat.EventError, Text: err.Error(), Err: err}
			if ctx.Err() != nil {
				event = chat.Event{Type: chat.EventError, Text: stoppedText}
			}
			m.eventChan <- event
			return nil
		}
		go m.forwardEvents(ctx, events)
		return nil
	}

	return m, tea.Batch(m.spinner.Tick, start, m.listenForEvents())
}

// forwardEvents copies a reply stream onto the panel's event channel until
// its terminal event. Once the request is stopped the rest of the stream is
// drained and reported as a single "Stopped" error. A stream that closes
// without a terminal event is finished with done.
func (m ChatModel) forwardEvents(ctx context.Context, events <-chan chat.Event) {
	finished := false
	for event := range events {
		if finished {
			continue
		}
		if ctx.Err() != nil {
			m.eventChan <- chat.Event{Type: chat.EventError, Text: stoppedText}
			finished = true
			continue
		}
		m.eventChan <- event
		if event.Type != chat.EventText {
			finished = true
		}
	}
	if !finished {
		m.eventChan <- chat.Event{Type: chat.EventDone}
	}
}

// listenForEvents returns a command that waits for the next stream event.
func (m ChatModel) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		select {
		case event := <-m.eventChan:
			return StreamEventMsg{Event: event}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// refresh re-renders the transcript into the viewport.
func (m *ChatModel) refresh() {
	width := m.viewport.ContentWidth()
	if width != m.renderWidth {
		m.rendered = make(map[int]string)
		m.renderWidth = width
	}
	m.viewport.SetContent(m.renderTranscript(width))
}

func (m *ChatModel) renderTranscript(width int) string {
	if m.transcript.Len() == 0 {
		return styles.SubtleStyle.Render(wordwrap.String("Ask the assistant for activities, objectives, or ways to extend a lesson.", width))
	}

	msgs := m.transcript.Messages()
	bubble := max(width*3/4, 10)
	var blocks []string
	for i, msg := range msgs {
		switch msg.Role {
		case chat.RoleUser:
			label := styles.SubtleStyle.Render("You")
			body := styles.UserMessageStyle.Render(wordwrap.String(msg.Content, bubble))
			block := lipgloss.JoinVertical(lipgloss.Right, label, body)
			blocks = append(blocks, lipgloss.PlaceHorizontal(width, lipgloss.Right, block))

		case chat.RoleAssistant:
			label := styles.SelectedStyle.Render("Assistant")
			if m.streaming && i == len(msgs)-1 {
				body := wordwrap.String(msg.Content, width)
				if body == "" {
					body = m.spinner.View() + " " + styles.SubtleStyle.Render("Thinking...")
				}
				blocks = append(blocks, label+"\n"+body)
				continue
			}
			blocks = append(blocks, label+"\n"+m.renderMarkdown(i, msg.Content, width))
		}
	}
	return strings.Join(blocks, "\n\n")
}

func (m *ChatModel) renderMarkdown(i int, content string, width int) string {
	if out, ok := m.rendered[i]; ok {
		return out
	}
	out := display.MarkdownRenderer(m.markdownStyle, width)(content)
	m.rendered[i] = out
	return out
}

// SetSize updates dimensions.
func (m *ChatModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	// Title (2) + input border (2) + input (1) + error line (1)
	m.viewport.SetSize(max(width, 10), max(height-6, 3))
	m.input.Width = max(width-6, 10)
	m.refresh()
}

// View implements tea.Model.
func (m ChatModel) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Assistant"))
	b.WriteString("\n")

	if m.service == nil {
		reason := m.disabledReason
		if reason == "" {
			reason = "no chat backend configured"
		}
		b.WriteString(styles.ErrorStyle.Render(wordwrap.String("Chat unavailable: "+reason, max(m.width, 20))))
		b.WriteString("\n")
		b.WriteString(styles.SubtleStyle.Render(wordwrap.String("Set chat.provider and chat.api-key in ~/.lessonplan/config.yaml.", max(m.width, 20))))
		return b.String()
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.lastErr != "" {
		b.WriteString(styles.ErrorStyle.Render(m.lastErr))
	}
	b.WriteString("\n")

	style := styles.InputStyle
	if m.focused {
		style = styles.FocusedInputStyle
	}
	b.WriteString(style.Width(max(m.width-2, 12)).Render(m.input.View()))
	return b.String()
}

// HelpItems returns key hints for the chat panel.
func (m ChatModel) HelpItems() []string {
	if m.service == nil {
		return []string{"Shift+Tab Back to form"}
	}
	if m.streaming {
		return []string{"Esc Stop", "↑↓ Scroll"}
	}
	items := []string{"Enter Send", "↑↓ Scroll", "Tab Form"}
	if m.lastErr != "" {
		items = append(items, "Ctrl+R Retry")
	}
	if _, ok := m.transcript.LastAssistant(); ok {
		items = append(items, "Ctrl+Y Copy reply")
	}
	return items
}

// Focus gives the input focus.
func (m *ChatModel) Focus() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes focus from the input.
func (m *ChatModel) Blur() {
	m.focused = false
	m.input.Blur()
}

// Cancel stops any reply in flight. Call on quit.
func (m *ChatModel) Cancel() {
	m.cancel()
}

// Focused reports whether the panel has focus.
func (m ChatModel) Focused() bool {
	return m.focused
}

// IsStreaming returns whether a reply is in progress.
func (m ChatModel) IsStreaming() bool {
	return m.streaming
}

// Messages returns a copy of the transcript.
func (m ChatModel) Messages() []chat.Message {
	return m.transcript.Messages()
}

// LastError returns the error shown under the transcript.
func (m ChatModel) LastError() string {
	return m.lastErr
}

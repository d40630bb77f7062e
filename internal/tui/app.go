// Package tui is the interactive lesson plan editor: the form on the left,
// the assistant on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/lessonplan/internal/tui/components"
	"github.com/pablasso/lessonplan/internal/tui/msgs"
	"github.com/pablasso/lessonplan/internal/tui/styles"
	"github.com/pablasso/lessonplan/internal/tui/views"
	"go.uber.org/zap"
)

// Minimum terminal dimensions for the two-pane layout.
const (
	MinTerminalWidth  = 80
	MinTerminalHeight = 24
)

// Pane identifies which half of the screen has focus.
type Pane int

const (
	PaneForm Pane = iota
	PaneChat
)

// Model is the main Bubble Tea model. It owns the focus ring that runs
// through the form fields and then into the chat input.
type Model struct {
	form   views.FormModel
	chat   views.ChatModel
	active Pane

	notice    string
	noticeErr bool

	logger *zap.Logger
	width  int
	height int
}

// Run starts the TUI application.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// New builds the root model with the form focused.
func New(opts Options) Model {
	opts = opts.withDefaults()

	reason := ""
	if opts.ChatErr != nil {
		reason = opts.ChatErr.Error()
	}

	m := Model{
		form: views.NewFormModel(opts.Saver, opts.Logger.Named("form"), opts.Now()),
		chat: views.NewChatModel(views.ChatConfig{
			Service:        opts.Chat,
			DisabledReason: reason,
			MarkdownStyle:  opts.MarkdownStyle,
			Logger:         opts.Logger.Named("chat"),
		}),
		logger: opts.Logger,
	}
	m.form.FocusFirst()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.chat.Init())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var formCmd, chatCmd tea.Cmd
		m.form, formCmd = m.form.Update(msg)
		m.chat, chatCmd = m.chat.Update(msg)
		return m, tea.Batch(formCmd, chatCmd)

	case msgs.PlanSubmittedMsg:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case views.StreamEventMsg, tea.MouseMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case msgs.ClipboardMsg:
		if msg.Err != nil {
			m.logger.Warn("clipboard write failed", zap.Error(msg.Err))
			m.setNotice(fmt.Sprintf("Could not copy %s: %v", msg.What, msg.Err), true)
		} else {
			m.setNotice(fmt.Sprintf("Copied %s to clipboard", msg.What), false)
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch msg.String() {
	case "ctrl+c":
		m.chat.Cancel()
		return m, tea.Quit
	case "tab":
		return m, m.focusNext()
	case "shift+tab":
		return m, m.focusPrev()
	case "ctrl+s":
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	return m.updateActive(msg)
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.active == PaneChat {
		m.chat, cmd = m.chat.Update(msg)
	} else {
		m.form, cmd = m.form.Update(msg)
	}
	return m, cmd
}

// focusNext advances the ring: form fields in order, then chat, then back to
// the first field.
func (m *Model) focusNext() tea.Cmd {
	if m.active == PaneForm {
		if ok, cmd := m.form.FocusNext(); ok {
			return cmd
		}
		m.form.Blur()
		m.active = PaneChat
		return m.chat.Focus()
	}
	m.chat.Blur()
	m.active = PaneForm
	return m.form.FocusFirst()
}

func (m *Model) focusPrev() tea.Cmd {
	if m.active == PaneForm {
		if ok, cmd := m.form.FocusPrev(); ok {
			return cmd
		}
		m.form.Blur()
		m.active = PaneChat
		return m.chat.Focus()
	}
	m.chat.Blur()
	m.active = PaneForm
	return m.form.FocusLast()
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

// paneWidths splits the width between the form and chat boxes (outer widths).
func (m Model) paneWidths() (int, int) {
	left := m.width * 55 / 100
	return left, m.width - left
}

func (m *Model) updateLayout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	left, right := m.paneWidths()
	// Border (2) + horizontal padding (2); status bar (1) + border (2)
	h := max(m.height-3, 1)
	m.form.SetSize(max(left-4, 10), h)
	m.chat.SetSize(max(right-4, 10), h)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width < MinTerminalWidth || m.height < MinTerminalHeight {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.ErrorStyle.Render(fmt.Sprintf("Terminal too small (%dx%d). Need at least %dx%d.",
				m.width, m.height, MinTerminalWidth, MinTerminalHeight)))
	}

	left, right := m.paneWidths()
	h := m.height - 3

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		m.box(m.active == PaneForm, left, h).Render(clipLines(m.form.View(), h)),
		m.box(m.active == PaneChat, right, h).Render(clipLines(m.chat.View(), h)),
	)

	return panels + "\n" + m.renderStatusBar()
}

func (m Model) box(focused bool, outerWidth, height int) lipgloss.Style {
	style := styles.BoxStyle
	if focused {
		style = styles.FocusedBoxStyle
	}
	return style.Width(outerWidth - 2).Height(height)
}

// clipLines keeps the first n lines of s.
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n")
}

func (m Model) renderStatusBar() string {
	var items []string
	if m.notice != "" {
		style := styles.SuccessStyle
		if m.noticeErr {
			style = styles.ErrorStyle
		}
		items = append(items, style.Render(m.notice))
	}
	if m.active == PaneChat {
		items = append(items, m.chat.HelpItems()...)
	} else {
		items = append(items, m.form.HelpItems()...)
	}
	items = append(items, "Ctrl+C Quit")
	return components.NewStatusBar().Render(m.width, items)
}

// ActivePane returns the pane with focus.
func (m Model) ActivePane() Pane {
	return m.active
}

// Form returns the form view.
func (m Model) Form() views.FormModel {
	return m.form
}

// Chat returns the chat view.
func (m Model) Chat() views.ChatModel {
	return m.chat
}

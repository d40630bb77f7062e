package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/lessonplan/internal/chat"
	"github.com/pablasso/lessonplan/internal/tui/msgs"
	"github.com/pablasso/lessonplan/internal/tui/views"
)

func testModel(opts Options) Model {
	opts.Now = func() time.Time { return time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC) }
	if opts.ChatErr == nil && opts.Chat == nil {
		opts.ChatErr = chat.ErrNoProvider
	}
	m := New(opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func press(m Model, k tea.KeyType) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: k})
	return updated.(Model)
}

func TestModel_View_TerminalTooSmall(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		expectSmall bool
	}{
		{"exactly minimum size", MinTerminalWidth, MinTerminalHeight, false},
		{"width too small", MinTerminalWidth - 1, MinTerminalHeight, true},
		{"height too small", MinTerminalWidth, MinTerminalHeight - 1, true},
		{"larger than minimum", 120, 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testModel(Options{})
			updated, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: tt.height})
			view := updated.(Model).View()

			if got := strings.Contains(view, "Terminal too small"); got != tt.expectSmall {
				t.Errorf("Terminal too small shown = %v, want %v", got, tt.expectSmall)
			}
		})
	}
}

func TestModel_View_BothPanes(t *testing.T) {
	m := testModel(Options{})
	view := m.View()

	for _, want := range []string{"Create Lesson Plan", "Assistant", "Ctrl+C Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if got := len(strings.Split(view, "\n")); got > 40 {
		t.Errorf("view taller than the terminal: %d lines", got)
	}
}

func TestModel_FocusRing(t *testing.T) {
	m := testModel(Options{})

	if m.ActivePane() != PaneForm || m.Form().FocusedField() != views.FieldTitle {
		t.Fatal("expected the title field focused at start")
	}

	// Title -> Description -> Date -> Tags -> Submit
	for i := 0; i < 4; i++ {
		m = press(m, tea.KeyTab)
	}
	if m.Form().FocusedField() != views.FieldSubmit {
		t.Fatalf("expected submit focused, got %d", m.Form().FocusedField())
	}

	m = press(m, tea.KeyTab)
	if m.ActivePane() != PaneChat || !m.Chat().Focused() || m.Form().Focused() {
		t.Fatal("expected tab past submit to focus the chat input")
	}

	m = press(m, tea.KeyTab)
	if m.ActivePane() != PaneForm || m.Form().FocusedField() != views.FieldTitle {
		t.Fatal("expected tab from chat to wrap to the title field")
	}

	m = press(m, tea.KeyShiftTab)
	if m.ActivePane() != PaneChat {
		t.Fatal("expected shift+tab from title to focus chat")
	}

	m = press(m, tea.KeyShiftTab)
	if m.ActivePane() != PaneForm || m.Form().FocusedField() != views.FieldSubmit {
		t.Fatal("expected shift+tab from chat to focus submit")
	}
}

func TestModel_CtrlSFromChat(t *testing.T) {
	m := testModel(Options{})
	m = press(m, tea.KeyShiftTab) // chat

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	m = updated.(Model)
	if cmd != nil {
		t.Error("expected no save for an empty form")
	}
	if !m.Form().Form().Attempted() {
		t.Error("expected ctrl+s to reach the form from the chat pane")
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := testModel(Options{})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestModel_ClipboardNotice(t *testing.T) {
	m := testModel(Options{})

	updated, _ := m.Update(msgs.ClipboardMsg{What: "reply"})
	if !strings.Contains(updated.(Model).View(), "Copied reply to clipboard") {
		t.Error("expected copy notice in the status bar")
	}

	updated, _ = m.Update(msgs.ClipboardMsg{What: "reply", Err: errors.New("no clipboard utility")})
	if !strings.Contains(updated.(Model).View(), "Could not copy reply") {
		t.Error("expected copy failure in the status bar")
	}

	// Any key clears the notice.
	cleared := press(updated.(Model), tea.KeyTab)
	if strings.Contains(cleared.View(), "Could not copy") {
		t.Error("expected notice cleared on the next key")
	}
}

func TestModel_ChatDisabledReason(t *testing.T) {
	m := testModel(Options{ChatErr: chat.ErrMissingAPIKey})
	if !strings.Contains(m.View(), "Chat unavailable") {
		t.Error("expected disabled chat message")
	}
}

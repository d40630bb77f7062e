package views

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pablasso/lessonplan/internal/tui/msgs"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// copyCmd writes text to the system clipboard off the update loop.
func copyCmd(what, text string) tea.Cmd {
	return func() tea.Msg {
		return msgs.ClipboardMsg{What: what, Err: writeClipboard(text)}
	}
}

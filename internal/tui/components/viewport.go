package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// ScrollViewport wraps bubbles/viewport.Model with auto-scroll tracking and
// a 1-column scrollbar on the right.
type ScrollViewport struct {
	viewport   viewport.Model
	autoScroll bool // true = scroll to bottom on new content
	lineCount  int
	width      int // total width including scrollbar
	height     int
}

// NewScrollViewport creates a viewport. The width includes 1 column for the
// scrollbar.
func NewScrollViewport(width, height int) ScrollViewport {
	vp := viewport.New(max(width-1, 0), height)
	vp.SetContent("")

	return ScrollViewport{
		viewport:   vp,
		autoScroll: true,
		width:      width,
		height:     height,
	}
}

// SetSize updates the viewport dimensions. Width includes the scrollbar column.
func (s *ScrollViewport) SetSize(width, height int) {
	if s.width == width && s.height == height {
		return
	}

	s.width = width
	s.height = height
	s.viewport.Width = s.ContentWidth()
	s.viewport.Height = height

	if s.autoScroll {
		s.viewport.GotoBottom()
	} else {
		s.viewport.SetYOffset(s.viewport.YOffset)
	}
}

// SetContent replaces the content. Callers wrap to ContentWidth first.
func (s *ScrollViewport) SetContent(content string) {
	s.lineCount = strings.Count(content, "\n") + 1
	if content == "" {
		s.lineCount = 0
	}
	s.viewport.SetContent(content)

	if s.autoScroll {
		s.viewport.GotoBottom()
	} else {
		s.viewport.SetYOffset(s.viewport.YOffset)
	}
}

// Update handles scroll keys and the mouse wheel. Scrolling up pauses
// auto-scroll; returning to the bottom re-enables it.
func (s *ScrollViewport) Update(msg tea.Msg) (ScrollViewport, tea.Cmd) {
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "pgup", "ctrl+u":
			s.autoScroll = false
		case "down", "pgdown", "ctrl+d":
			if s.viewport.AtBottom() {
				s.autoScroll = true
			}
		case "end":
			s.viewport.GotoBottom()
			s.autoScroll = true
		case "home":
			s.viewport.GotoTop()
			s.autoScroll = false
		}
	case tea.MouseMsg:
		s.autoScroll = s.viewport.AtBottom()
	}

	return *s, cmd
}

// View renders the content with the scrollbar column.
func (s ScrollViewport) View() string {
	content := strings.Split(s.viewport.View(), "\n")
	bar := scrollbar(s.height, s.lineCount, s.viewport.YOffset)
	cw := s.ContentWidth()

	var b strings.Builder
	for i := 0; i < s.height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		line := ""
		if i < len(content) {
			line = content[i]
		}
		b.WriteString(line)
		// Pad by display width so styled lines keep the bar aligned.
		if pad := cw - ansi.StringWidth(line); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(bar[i])
	}
	return b.String()
}

// SetAutoScroll turns auto-scroll on or off. Turning it on jumps to the bottom.
func (s *ScrollViewport) SetAutoScroll(enabled bool) {
	s.autoScroll = enabled
	if enabled {
		s.viewport.GotoBottom()
	}
}

// AtBottom returns true if the viewport is scrolled to the bottom.
func (s ScrollViewport) AtBottom() bool {
	return s.viewport.AtBottom()
}

// AutoScroll returns whether auto-scroll is currently enabled.
func (s ScrollViewport) AutoScroll() bool {
	return s.autoScroll
}

// ContentWidth returns the width available for content.
func (s ScrollViewport) ContentWidth() int {
	return max(s.width-1, 0)
}

// scrollbar returns one cell per visible row. Rows are blank until the
// content overflows; then a track (│) with a proportional thumb (█).
func scrollbar(viewHeight, contentHeight, yOffset int) []string {
	rows := make([]string, max(viewHeight, 0))
	if contentHeight <= viewHeight {
		for i := range rows {
			rows[i] = " "
		}
		return rows
	}

	thumbSize := max(viewHeight*viewHeight/contentHeight, 1)
	thumbMaxTop := viewHeight - thumbSize
	thumbTop := yOffset * thumbMaxTop / (contentHeight - viewHeight)
	thumbTop = min(max(thumbTop, 0), thumbMaxTop)

	for i := range rows {
		if i >= thumbTop && i < thumbTop+thumbSize {
			rows[i] = "█"
		} else {
			rows[i] = "│"
		}
	}
	return rows
}

package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestScrollbar_ContentFits(t *testing.T) {
	rows := scrollbar(5, 3, 0)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for i, r := range rows {
		if r != " " {
			t.Errorf("row %d: expected blank gutter, got %q", i, r)
		}
	}
}

func TestScrollbar_ThumbTracksOffset(t *testing.T) {
	tests := []struct {
		name     string
		offset   int
		thumbRow int
	}{
		{"top", 0, 0},
		{"bottom", 90, 9},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows := scrollbar(10, 100, tc.offset)
			if rows[tc.thumbRow] != "█" {
				t.Errorf("expected thumb at row %d, got %q", tc.thumbRow, rows[tc.thumbRow])
			}
			thumbs := 0
			for _, r := range rows {
				if r == "█" {
					thumbs++
				}
			}
			if thumbs != 1 {
				t.Errorf("expected a 1-row thumb, got %d", thumbs)
			}
		})
	}
}

func TestScrollViewport_AutoScroll(t *testing.T) {
	s := NewScrollViewport(20, 5)
	s.SetContent(numberedLines(20))

	if !s.AtBottom() {
		t.Error("expected viewport at bottom after new content")
	}
	if !strings.Contains(s.View(), "line 20") {
		t.Errorf("expected last line visible, got:\n%s", s.View())
	}
}

func TestScrollViewport_ScrollUpPausesAutoScroll(t *testing.T) {
	s := NewScrollViewport(20, 5)
	s.SetContent(numberedLines(20))

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyUp})
	if s.AutoScroll() {
		t.Error("expected auto-scroll paused after scrolling up")
	}

	s.SetContent(numberedLines(25))
	if s.AtBottom() {
		t.Error("expected viewport to keep its position while paused")
	}

	s, _ = s.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if !s.AutoScroll() || !s.AtBottom() {
		t.Error("expected end to resume auto-scroll at the bottom")
	}
}

func TestScrollViewport_ViewWidth(t *testing.T) {
	s := NewScrollViewport(12, 3)
	s.SetContent("short\n\x1b[1mbold\x1b[0m")

	lines := strings.Split(s.View(), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 12 {
			t.Errorf("row %d: expected width 12, got %d (%q)", i, w, line)
		}
	}
}

package display

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero duration", 0, "00:00"},
		{"seconds only", 2 * time.Second, "00:02"},
		{"rounds to nearest second", 1500 * time.Millisecond, "00:02"},
		{"minutes and seconds", 5*time.Minute + 30*time.Second, "05:30"},
		{"one hour", time.Hour, "01:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.duration); got != tt.expected {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.duration, got, tt.expected)
			}
		})
	}
}

func TestFormatLine(t *testing.T) {
	state := State{Title: "Fractions with pizza", Status: StatusSaving}
	line := formatLine(state, "⣾", 2*time.Second)

	expected := `⣾ Saving "Fractions with pizza" │ ⏱ 00:02`
	if line != expected {
		t.Errorf("formatLine() = %q, want %q", line, expected)
	}
}

func TestFormatLine_SettledMarkers(t *testing.T) {
	tests := []struct {
		status Status
		prefix string
	}{
		{StatusSaved, "✓ Saved"},
		{StatusFailed, "✗ Failed"},
		{StatusIdle, "• Idle"},
	}

	for _, tt := range tests {
		line := formatLine(State{Title: "Photosynthesis", Status: tt.status}, "⣾", time.Second)
		if strings.Contains(line, "⣾") {
			t.Errorf("expected no spinner frame for %v, got %q", tt.status, line)
		}
		if !strings.HasPrefix(line, tt.prefix) {
			t.Errorf("expected prefix %q, got %q", tt.prefix, line)
		}
	}
}

func TestFormatLine_LongTitle(t *testing.T) {
	state := State{Title: strings.Repeat("a", 60), Status: StatusSaving}
	line := formatLine(state, "⣾", 0)

	if !strings.Contains(line, strings.Repeat("a", 39)+"…\"") {
		t.Errorf("expected title truncated to 40 columns, got %q", line)
	}
}

func TestFormatLine_WideTitle(t *testing.T) {
	state := State{Title: strings.Repeat("日", 30), Status: StatusSaving}
	line := formatLine(state, "⣾", 0)

	if !strings.Contains(line, strings.Repeat("日", 19)+"…") {
		t.Errorf("expected wide runes truncated by display width, got %q", line)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status   Status
		expected string
	}{
		{StatusIdle, "Idle"},
		{StatusSaving, "Saving"},
		{StatusSaved, "Saved"},
		{StatusFailed, "Failed"},
		{Status(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.expected {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.expected)
		}
	}
}

func running(d *Display) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop != nil
}

func TestStartStop(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf)

	if running(d) {
		t.Error("should not be running before Start()")
	}

	d.Start("Volcanoes")
	if !running(d) {
		t.Error("should be running after Start()")
	}
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	if running(d) {
		t.Error("should not be running after Stop()")
	}
	out := buf.String()
	if !strings.Contains(out, `Saving "Volcanoes"`) {
		t.Errorf("expected status line in output, got %q", out)
	}
	if !strings.HasSuffix(out, "\r\033[K") {
		t.Errorf("expected line cleared on stop, got %q", out)
	}
}

func TestFinishLeavesFinalLine(t *testing.T) {
	var buf bytes.Buffer
	d := New(&buf)

	d.Start("Volcanoes")
	d.Finish(StatusSaved)

	out := buf.String()
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("expected final line to end with a newline, got %q", out)
	}
	last := out[strings.LastIndex(out, "\r\033[K")+len("\r\033[K"):]
	if !strings.HasPrefix(last, `✓ Saved "Volcanoes"`) {
		t.Errorf("final line = %q", last)
	}
}

func TestFinishWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Finish(StatusFailed)

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestStartIdempotent(t *testing.T) {
	d := New(&bytes.Buffer{})

	d.Start("a")
	d.Start("b")
	time.Sleep(20 * time.Millisecond)
	d.Stop()

	if d.state.Title != "a" {
		t.Errorf("second Start should be ignored, title = %q", d.state.Title)
	}
}

func TestStopIdempotent(t *testing.T) {
	d := New(&bytes.Buffer{})

	// Stop without start should be safe
	d.Stop()

	d.Start("a")
	d.Stop()
	d.Stop()

	if running(d) {
		t.Error("should not be running after multiple Stop() calls")
	}

	// Restart after stop
	d.Start("b")
	d.Stop()
}

func TestMarkdownRenderer_Plain(t *testing.T) {
	render := MarkdownRenderer("plain", 20)
	out := render("# Heading\nsome words that will need to wrap")

	if !strings.Contains(out, "# Heading") {
		t.Errorf("plain output should keep the Markdown source, got %q", out)
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) > 20 {
			t.Errorf("line exceeds width: %q", line)
		}
	}
}

func TestMarkdownRenderer_Styled(t *testing.T) {
	render := MarkdownRenderer("dark", 60)
	out := ansi.Strip(render("# Warm-up\n\nCount by **fives**."))

	if strings.Contains(out, "**") {
		t.Errorf("expected emphasis markers to be rendered, got %q", out)
	}
	if !strings.Contains(out, "fives") {
		t.Errorf("expected content preserved, got %q", out)
	}
	if strings.HasPrefix(out, "\n") || strings.HasSuffix(out, "\n") {
		t.Errorf("expected surrounding newlines trimmed, got %q", out)
	}
}

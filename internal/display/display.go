// Package display renders terminal output for the headless commands: a live
// status line while a plan is being saved, and Markdown.
package display

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// Status is the phase shown on the status line.
type Status int

const (
	StatusIdle Status = iota
	StatusSaving
	StatusSaved
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusSaving:
		return "Saving"
	case StatusSaved:
		return "Saved"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// marker is the glyph shown in place of the spinner once work has settled.
func (s Status) marker() string {
	switch s {
	case StatusSaved:
		return "✓"
	case StatusFailed:
		return "✗"
	default:
		return "•"
	}
}

// State is what the status line shows.
type State struct {
	Title     string
	Status    Status
	StartTime time.Time
}

const (
	maxTitleWidth = 40
	clearLine     = "\r\033[K"
)

var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

// Display redraws a single status line in place until stopped.
type Display struct {
	mu       sync.Mutex
	w        io.Writer
	interval time.Duration
	state    State
	frame    int
	lastLine string

	stop context.CancelFunc
	done chan struct{}
}

// New creates a Display writing to w.
func New(w io.Writer) *Display {
	return &Display{w: w, interval: 100 * time.Millisecond}
}

// Start shows a saving line for title. Calling Start while running does
// nothing.
func (d *Display) Start(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stop != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.stop = cancel
	d.done = make(chan struct{})
	d.state = State{Title: title, Status: StatusSaving, StartTime: time.Now()}
	d.lastLine = ""

	go d.loop(ctx, d.done)
}

// Stop halts the redraw loop and erases the line, for work that was
// abandoned rather than finished.
func (d *Display) Stop() {
	if d.halt() {
		fmt.Fprint(d.w, clearLine)
	}
}

// Finish halts the redraw loop and leaves a final line showing status.
func (d *Display) Finish(status Status) {
	if !d.halt() {
		return
	}
	d.mu.Lock()
	d.state.Status = status
	line := formatLine(d.state, "", time.Since(d.state.StartTime))
	d.mu.Unlock()

	fmt.Fprintf(d.w, "%s%s\n", clearLine, line)
}

// halt stops the loop and waits for it to exit. Reports whether it was
// running.
func (d *Display) halt() bool {
	d.mu.Lock()
	stop, done := d.stop, d.done
	d.stop, d.done = nil, nil
	d.mu.Unlock()

	if stop == nil {
		return false
	}
	stop()
	<-done
	return true
}

func (d *Display) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.render()
	for {
		select {
		case <-ticker.C:
			d.render()
		case <-ctx.Done():
			return
		}
	}
}

func (d *Display) render() {
	d.mu.Lock()
	defer d.mu.Unlock()

	frame := spinnerFrames[d.frame%len(spinnerFrames)]
	d.frame++

	line := formatLine(d.state, frame, time.Since(d.state.StartTime))
	if line == d.lastLine {
		return
	}
	d.lastLine = line
	fmt.Fprint(d.w, clearLine+line)
}

// formatLine renders one status line. frame is used only while saving.
func formatLine(state State, frame string, elapsed time.Duration) string {
	title := ansi.Truncate(state.Title, maxTitleWidth, "…")
	if state.Status != StatusSaving || frame == "" {
		frame = state.Status.marker()
	}
	return fmt.Sprintf("%s %s %q │ ⏱ %s", frame, state.Status, title, formatDuration(elapsed))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

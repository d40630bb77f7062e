package tui

import (
	"time"

	"github.com/pablasso/lessonplan/internal/chat"
	"github.com/pablasso/lessonplan/internal/lesson"
	"go.uber.org/zap"
)

// Options configures TUI startup.
type Options struct {
	// Chat backs the assistant panel. Nil disables the panel; ChatErr says
	// why.
	Chat    chat.Service
	ChatErr error

	// Saver receives submitted plans. Nil uses a SimulatedSaver with the
	// default delay.
	Saver lesson.Saver

	Logger *zap.Logger

	// MarkdownStyle is the glamour style for assistant replies.
	MarkdownStyle string

	// Now positions the date picker; nil uses time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Saver == nil {
		o.Saver = lesson.NewSimulatedSaver(lesson.DefaultSaveDelay, o.Logger.Named("saver"))
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

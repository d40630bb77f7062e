package lesson

import (
	"context"
	"time"

	"github.com/pablasso/lessonplan/internal/util"
	"go.uber.org/zap"
)

// DefaultSaveDelay is how long SimulatedSaver waits before recording a plan.
const DefaultSaveDelay = 2 * time.Second

// Saver stores a submitted draft. It is called at most once per submit.
type Saver interface {
	Save(ctx context.Context, d Draft) error
}

// SaverFunc adapts a function to the Saver interface.
type SaverFunc func(ctx context.Context, d Draft) error

// Save implements Saver.
func (fn SaverFunc) Save(ctx context.Context, d Draft) error {
	return fn(ctx, d)
}

// SimulatedSaver stands in for a real backend: it waits Delay and then writes
// the plan to Logger.
type SimulatedSaver struct {
	Delay  time.Duration
	Logger *zap.Logger
}

// NewSimulatedSaver returns a saver with the given delay. A nil logger
// discards the record.
func NewSimulatedSaver(delay time.Duration, logger *zap.Logger) SimulatedSaver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return SimulatedSaver{Delay: delay, Logger: logger}
}

// Save implements Saver. It returns ctx.Err() if the context ends first.
func (s SimulatedSaver) Save(ctx context.Context, d Draft) error {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	id, err := util.GenerateShortID()
	if err != nil {
		return err
	}

	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("lesson plan submitted",
		zap.String("id", id),
		zap.String("slug", util.ToKebabCase(d.Title)),
		zap.String("title", d.Title),
		zap.String("description", d.Description),
		zap.String("date", d.Date.Format(DateLayout)),
		zap.Strings("tags", d.Tags),
	)
	return nil
}

// Package testutil provides testing utilities for the lessonplan project.
package testutil

import (
	"context"
	"os/exec"
	"sync"
)

// CommandFunc matches exec.CommandContext.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// MockCommandFunc creates a mock command that outputs the given response.
// Usage: chat.CommandContext = testutil.MockCommandFunc(streamJSON)
func MockCommandFunc(output string) CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "printf", "%s", output)
	}
}

// FailingCommandFunc creates a mock command that exits non-zero without output.
func FailingCommandFunc() CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "false")
	}
}

// CommandRecorder captures the arguments of every mocked invocation.
type CommandRecorder struct {
	mu    sync.Mutex
	calls [][]string
}

// Func returns a CommandFunc that records its arguments and prints output.
func (r *CommandRecorder) Func(output string) CommandFunc {
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		r.mu.Lock()
		call := append([]string{name}, args...)
		r.calls = append(r.calls, call)
		r.mu.Unlock()
		return exec.CommandContext(ctx, "printf", "%s", output)
	}
}

// Calls returns the recorded invocations.
func (r *CommandRecorder) Calls() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]string, len(r.calls))
	copy(out, r.calls)
	return out
}

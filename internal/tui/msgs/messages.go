// Package msgs defines message types shared between TUI views.
package msgs

import "github.com/pablasso/lessonplan/internal/lesson"

// PlanSubmittedMsg is sent when the saver returns for a submitted snapshot.
type PlanSubmittedMsg struct {
	Draft lesson.Draft
	Err   error
}

// ClipboardMsg reports the result of a copy to the system clipboard.
type ClipboardMsg struct {
	What string // human-readable name of what was copied
	Err  error
}

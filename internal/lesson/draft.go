// Package lesson holds the lesson plan draft, its validation rules, the tag
// editor, and the controller that owns the submission lifecycle.
package lesson

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar-day format used for display and CLI input.
const DateLayout = "2006-01-02"

// Draft is the in-progress, unsaved lesson plan.
type Draft struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"` // zero value means no date selected
	Tags        []string  `json:"tags"`
}

// HasDate reports whether a date has been selected.
func (d Draft) HasDate() bool {
	return !d.Date.IsZero()
}

// Clone returns a deep copy so later edits to d cannot leak into the copy.
func (d Draft) Clone() Draft {
	c := d
	if d.Tags != nil {
		c.Tags = make([]string, len(d.Tags))
		copy(c.Tags, d.Tags)
	}
	return c
}

// IsEmpty reports whether the draft equals its initial value.
func (d Draft) IsEmpty() bool {
	return d.Title == "" && d.Description == "" && !d.HasDate() && len(d.Tags) == 0
}

// Markdown renders the draft as a small Markdown document.
func (d Draft) Markdown() string {
	var b strings.Builder

	title := strings.TrimSpace(d.Title)
	if title == "" {
		title = "Untitled lesson"
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if d.HasDate() {
		fmt.Fprintf(&b, "**Date:** %s\n\n", d.Date.Format(DateLayout))
	}

	if len(d.Tags) > 0 {
		quoted := make([]string, len(d.Tags))
		for i, tag := range d.Tags {
			quoted[i] = "`" + tag + "`"
		}
		fmt.Fprintf(&b, "**Tags:** %s\n\n", strings.Join(quoted, " "))
	}

	if desc := strings.TrimSpace(d.Description); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n")
	}

	return b.String()
}

// normalizeDate drops the time-of-day so only the calendar day is kept.
func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate parses a YYYY-MM-DD string in the local timezone.
// An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

package lesson

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"
)

// SubmissionState is the idle/in-flight flag guarding against duplicate submits.
type SubmissionState int

const (
	Idle SubmissionState = iota
	Submitting
)

func (s SubmissionState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	default:
		return fmt.Sprintf("SubmissionState(%d)", int(s))
	}
}

// ErrSubmitInFlight is returned when a submit is attempted while a save is
// still pending.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// SaveError reports that the saver rejected a submitted draft. The draft is
// the snapshot that was being saved.
type SaveError struct {
	Draft Draft
	Err   error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save lesson plan: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Form owns a lesson plan draft and its submission lifecycle. All mutations go
// through its methods. A Form is not safe for concurrent use; callers drive it
// from a single goroutine (the UI event loop).
type Form struct {
	draft      Draft
	pendingTag string

	errors    ValidationErrors
	attempted bool

	state   SubmissionState
	saveErr *SaveError
}

// NewForm returns a form holding an empty draft.
func NewForm() *Form {
	return &Form{}
}

// SetTitle assigns the title.
func (f *Form) SetTitle(text string) {
	f.draft.Title = text
}

// SetDescription assigns the description.
func (f *Form) SetDescription(text string) {
	f.draft.Description = text
}

// SetDate assigns the lesson date. Only the calendar day is kept; the zero time
// clears the date.
func (f *Form) SetDate(t time.Time) {
	f.draft.Date = normalizeDate(t)
}

// ClearDate unsets the lesson date.
func (f *Form) ClearDate() {
	f.draft.Date = time.Time{}
}

func (f *Form) Title() string       { return f.draft.Title }
func (f *Form) Description() string { return f.draft.Description }

// Date returns the selected date and whether one is set.
func (f *Form) Date() (time.Time, bool) {
	return f.draft.Date, f.draft.HasDate()
}

// Tags returns a copy of the tag list in insertion order.
func (f *Form) Tags() []string {
	return f.draft.Clone().Tags
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	return f.draft.Clone()
}

// State returns the submission state.
func (f *Form) State() SubmissionState {
	return f.state
}

// Submitting reports whether a save is in flight.
func (f *Form) Submitting() bool {
	return f.state == Submitting
}

// Validate recomputes the error map for the current draft, replacing any
// previous errors. The returned map is a copy.
func (f *Form) Validate() ValidationErrors {
	f.errors = Validate(f.draft)
	f.attempted = true
	return maps.Clone(f.errors)
}

// Errors returns the errors from the most recent validation. It is empty until
// the first submit attempt.
func (f *Form) Errors() ValidationErrors {
	if !f.attempted {
		return ValidationErrors{}
	}
	return maps.Clone(f.errors)
}

// Attempted reports whether submit has been tried at least once.
func (f *Form) Attempted() bool {
	return f.attempted
}

// SaveErr returns the error from the last failed save, if any.
func (f *Form) SaveErr() *SaveError {
	return f.saveErr
}

// BeginSubmit validates the draft and, if valid, moves to Submitting and
// returns a snapshot to hand to the saver. Later edits do not affect the
// snapshot. Returns ValidationErrors when the draft is invalid and
// ErrSubmitInFlight when a save is already pending.
func (f *Form) BeginSubmit() (Draft, error) {
	if f.state == Submitting {
		return Draft{}, ErrSubmitInFlight
	}

	f.saveErr = nil
	if errs := f.Validate(); len(errs) > 0 {
		return Draft{}, errs
	}

	f.state = Submitting
	return f.draft.Clone(), nil
}

// CompleteSubmit finishes the save started by BeginSubmit. On success the
// draft is reset to empty; on failure the draft is kept for retry and the
// error is recorded as a SaveError.
func (f *Form) CompleteSubmit(snapshot Draft, err error) {
	if f.state != Submitting {
		return
	}
	f.state = Idle

	if err != nil {
		f.saveErr = &SaveError{Draft: snapshot, Err: err}
		return
	}
	f.Reset()
}

// Reset returns the draft and pending tag to their initial empty values.
// Validation state is kept.
func (f *Form) Reset() {
	f.draft = Draft{}
	f.pendingTag = ""
}

// Submit runs the whole lifecycle synchronously: validate, save, then reset.
func (f *Form) Submit(ctx context.Context, saver Saver) error {
	snapshot, err := f.BeginSubmit()
	if err != nil {
		return err
	}

	saveErr := saver.Save(ctx, snapshot)
	f.CompleteSubmit(snapshot, saveErr)
	if saveErr != nil {
		return f.saveErr
	}
	return nil
}

package views

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/lessonplan/internal/lesson"
	"github.com/pablasso/lessonplan/internal/tui/components"
	"github.com/pablasso/lessonplan/internal/tui/msgs"
	"github.com/pablasso/lessonplan/internal/tui/styles"
	"go.uber.org/zap"
)

// FormField identifies a focusable element of the form, in focus order.
type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
	FieldDate
	FieldTags
	FieldSubmit
)

const fieldCount = int(FieldSubmit) + 1

// FormModel is the lesson plan form. All edits go through a lesson.Form; the
// widgets only mirror it.
type FormModel struct {
	form   *lesson.Form
	saver  lesson.Saver
	logger *zap.Logger

	title       textinput.Model
	description textarea.Model
	calendar    components.Calendar
	tagInput    textinput.Model
	chipCursor  int // selected chip while the tag input is empty, -1 for none

	focus   FormField
	focused bool

	spinner  spinner.Model
	lastPlan *lesson.Draft
	notice   string
	noticeOK bool

	width  int
	height int
}

// NewFormModel creates the form view. today positions the calendar.
func NewFormModel(saver lesson.Saver, logger *zap.Logger, today time.Time) FormModel {
	if logger == nil {
		logger = zap.NewNop()
	}

	title := textinput.New()
	title.Placeholder = "Enter lesson title"
	title.Prompt = ""
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "Enter lesson description"
	desc.ShowLineNumbers = false
	desc.Prompt = ""
	desc.SetHeight(4)
	desc.FocusedStyle.Base = lipgloss.NewStyle()
	desc.BlurredStyle.Base = lipgloss.NewStyle()
	desc.FocusedStyle.CursorLine = lipgloss.NewStyle()
	desc.BlurredStyle.CursorLine = lipgloss.NewStyle()

	tags := textinput.New()
	tags.Placeholder = "Add tags"
	tags.Prompt = ""
	tags.CharLimit = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	return FormModel{
		form:        lesson.NewForm(),
		saver:       saver,
		logger:      logger,
		title:       title,
		description: desc,
		calendar:    components.NewCalendar(today),
		tagInput:    tags,
		chipCursor:  -1,
		spinner:     s,
	}
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if m.form.Submitting() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case msgs.PlanSubmittedMsg:
		return m.handleSubmitted(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Forward blink and other widget messages to the focused input.
	return m.updateFocusedInput(msg)
}

func (m FormModel) handleKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		return m.submit()
	case "ctrl+y":
		if m.lastPlan == nil {
			m.setNotice("Nothing to copy yet", false)
			return m, nil
		}
		return m, copyCmd("lesson plan", m.lastPlan.Markdown())
	}

	if !m.focused {
		return m, nil
	}

	switch m.focus {
	case FieldDate:
		if m.calendar.HandleKey(msg.String()) {
			if d, ok := m.calendar.Selected(); ok {
				m.form.SetDate(d)
			} else {
				m.form.ClearDate()
			}
		}
		return m, nil

	case FieldTags:
		return m.handleTagKey(msg)

	case FieldSubmit:
		if msg.String() == "enter" || msg.String() == " " {
			return m.submit()
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m FormModel) handleTagKey(msg tea.KeyMsg) (FormModel, tea.Cmd) {
	tags := m.form.Tags()
	empty := m.tagInput.Value() == ""

	switch msg.String() {
	case "enter":
		m.form.SetPendingTag(m.tagInput.Value())
		if m.form.AddPendingTag() {
			m.logger.Debug("tag added", zap.Strings("tags", m.form.Tags()))
		}
		m.tagInput.SetValue(m.form.PendingTag())
		m.chipCursor = -1
		return m, nil

	case "left":
		if empty && len(tags) > 0 {
			if m.chipCursor < 0 {
				m.chipCursor = len(tags) - 1
			} else if m.chipCursor > 0 {
				m.chipCursor--
			}
			return m, nil
		}

	case "right":
		if empty && m.chipCursor >= 0 {
			if m.chipCursor < len(tags)-1 {
				m.chipCursor++
			} else {
				m.chipCursor = -1
			}
			return m, nil
		}

	case "backspace", "delete":
		if empty && len(tags) > 0 {
			if m.chipCursor < 0 {
				m.chipCursor = len(tags) - 1
				return m, nil
			}
			m.form.RemoveTag(tags[m.chipCursor])
			m.chipCursor = min(m.chipCursor, len(m.form.Tags())-1)
			return m, nil
		}

	case "esc":
		m.chipCursor = -1
		return m, nil
	}

	m.chipCursor = -1
	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	m.form.SetPendingTag(m.tagInput.Value())
	return m, cmd
}

func (m FormModel) updateFocusedInput(msg tea.Msg) (FormModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldTitle:
		m.title, cmd = m.title.Update(msg)
		m.form.SetTitle(m.title.Value())
	case FieldDescription:
		m.description, cmd = m.description.Update(msg)
		m.form.SetDescription(m.description.Value())
	case FieldTags:
		m.tagInput, cmd = m.tagInput.Update(msg)
		m.form.SetPendingTag(m.tagInput.Value())
	}
	return m, cmd
}

// submit validates and hands a snapshot to the saver in the background.
func (m FormModel) submit() (FormModel, tea.Cmd) {
	snapshot, err := m.form.BeginSubmit()
	if err != nil {
		var verrs lesson.ValidationErrors
		if errors.As(err, &verrs) {
			m.logger.Debug("submit rejected", zap.Strings("fields", fieldNames(verrs)))
			m.notice = ""
		}
		return m, nil
	}

	m.notice = ""
	m.logger.Debug("submit started", zap.String("title", snapshot.Title))

	saver := m.saver
	save := func() tea.Msg {
		return msgs.PlanSubmittedMsg{Draft: snapshot, Err: saver.Save(context.Background(), snapshot)}
	}
	return m, tea.Batch(m.spinner.Tick, save)
}

func (m FormModel) handleSubmitted(msg msgs.PlanSubmittedMsg) FormModel {
	m.form.CompleteSubmit(msg.Draft, msg.Err)

	if msg.Err != nil {
		m.logger.Warn("save failed", zap.Error(msg.Err))
		m.setNotice(fmt.Sprintf("Could not create lesson plan: %v", msg.Err), false)
		return m
	}

	plan := msg.Draft
	m.lastPlan = &plan
	m.setNotice(fmt.Sprintf("Lesson plan created: %s (ctrl+y to copy)", plan.Title), true)
	m.syncFromForm()
	return m
}

// syncFromForm resets the widgets to match the form after it was reset.
func (m *FormModel) syncFromForm() {
	m.title.SetValue(m.form.Title())
	m.description.SetValue(m.form.Description())
	if d, ok := m.form.Date(); ok {
		m.calendar.SetSelected(d)
	} else {
		m.calendar.SetSelected(time.Time{})
	}
	m.tagInput.SetValue(m.form.PendingTag())
	m.chipCursor = -1
}

func (m *FormModel) setNotice(text string, ok bool) {
	m.notice = text
	m.noticeOK = ok
}

// Focus gives the form focus at its current field.
func (m *FormModel) Focus() tea.Cmd {
	m.focused = true
	return m.applyFocus()
}

// FocusFirst focuses the first field.
func (m *FormModel) FocusFirst() tea.Cmd {
	m.focus = FieldTitle
	return m.Focus()
}

// FocusLast focuses the submit button.
func (m *FormModel) FocusLast() tea.Cmd {
	m.focus = FieldSubmit
	return m.Focus()
}

// FocusNext moves to the next field. It returns false, leaving focus alone,
// when already on the last field.
func (m *FormModel) FocusNext() (bool, tea.Cmd) {
	if int(m.focus) >= fieldCount-1 {
		return false, nil
	}
	m.focus++
	return true, m.applyFocus()
}

// FocusPrev moves to the previous field. It returns false when already on
// the first field.
func (m *FormModel) FocusPrev() (bool, tea.Cmd) {
	if m.focus == FieldTitle {
		return false, nil
	}
	m.focus--
	return true, m.applyFocus()
}

// Blur removes focus from every field.
func (m *FormModel) Blur() {
	m.focused = false
	m.title.Blur()
	m.description.Blur()
	m.calendar.Blur()
	m.tagInput.Blur()
}

func (m *FormModel) applyFocus() tea.Cmd {
	m.title.Blur()
	m.description.Blur()
	m.calendar.Blur()
	m.tagInput.Blur()
	m.chipCursor = -1

	switch m.focus {
	case FieldTitle:
		return m.title.Focus()
	case FieldDescription:
		return m.description.Focus()
	case FieldDate:
		m.calendar.Focus()
	case FieldTags:
		return m.tagInput.Focus()
	}
	return nil
}

// SetSize updates dimensions.
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	// InputStyle border (2) + padding (2) + cursor (1)
	inner := max(width-5, 10)
	m.title.Width = inner
	m.tagInput.Width = inner
	m.description.SetWidth(inner)
}

// View implements tea.Model.
func (m FormModel) View() string {
	errs := m.form.Errors()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Create Lesson Plan"))
	b.WriteString("\n")

	b.WriteString(m.renderField("Title", FieldTitle, m.title.View(), errs.Get(lesson.FieldTitle)))
	b.WriteString(m.renderField("Description", FieldDescription, m.description.View(), errs.Get(lesson.FieldDescription)))
	b.WriteString(m.renderDate(errs.Get(lesson.FieldDate)))
	b.WriteString(m.renderTags())

	b.WriteString(m.renderButton())

	if m.notice != "" {
		b.WriteString("\n\n")
		style := styles.ErrorStyle
		if m.noticeOK {
			style = styles.SuccessStyle
		}
		b.WriteString(style.Width(max(m.width, 20)).Render(m.notice))
	}

	return b.String()
}

func (m FormModel) label(text string, field FormField) string {
	if m.focused && m.focus == field {
		return styles.FocusedLabelStyle.Render(text)
	}
	return styles.LabelStyle.Render(text)
}

func (m FormModel) inputStyle(field FormField, errMsg string) lipgloss.Style {
	style := styles.InputStyle
	switch {
	case m.focused && m.focus == field:
		style = styles.FocusedInputStyle
	case errMsg != "":
		style = styles.ErrorInputStyle
	}
	return style.Width(max(m.width-2, 12))
}

func (m FormModel) renderField(label string, field FormField, input, errMsg string) string {
	var b strings.Builder
	b.WriteString(m.label(label, field))
	b.WriteString("\n")
	b.WriteString(m.inputStyle(field, errMsg).Render(input))
	b.WriteString("\n")
	if errMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m FormModel) renderDate(errMsg string) string {
	var b strings.Builder
	b.WriteString(m.label("Date", FieldDate))
	b.WriteString("  ")
	if d, ok := m.form.Date(); ok {
		b.WriteString(d.Format("Mon, Jan 2 2006"))
	} else {
		b.WriteString(styles.SubtleStyle.Render("Pick a date"))
	}
	b.WriteString("\n")

	if m.focused && m.focus == FieldDate {
		b.WriteString(m.calendar.View())
		b.WriteString("\n")
	}
	if errMsg != "" {
		b.WriteString(styles.ErrorStyle.Render(errMsg))
		b.WriteString("\n")
	}
	return b.String()
}

func (m FormModel) renderTags() string {
	var b strings.Builder
	b.WriteString(m.label("Tags", FieldTags))
	b.WriteString("\n")
	b.WriteString(m.inputStyle(FieldTags, "").Render(m.tagInput.View()))
	b.WriteString("\n")
	if chips := components.RenderChips(m.form.Tags(), m.chipCursor, max(m.width, 20)); chips != "" {
		b.WriteString(chips)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m FormModel) renderButton() string {
	if m.form.Submitting() {
		return m.spinner.View() + " " + styles.SubtleStyle.Render("Creating...")
	}
	if m.focused && m.focus == FieldSubmit {
		return styles.FocusedButtonStyle.Render("Create Lesson Plan")
	}
	return styles.ButtonStyle.Render("Create Lesson Plan")
}

// HelpItems returns key hints for the focused field.
func (m FormModel) HelpItems() []string {
	var items []string
	switch m.focus {
	case FieldDate:
		items = []string{"←→↑↓ Move", "[ ] Month", "Enter Select", "x Clear"}
	case FieldTags:
		items = []string{"Enter Add tag", "← Select chip", "Backspace Remove"}
	case FieldSubmit:
		items = []string{"Enter Create"}
	}
	items = append(items, "Tab Next", "Ctrl+S Create")
	if m.lastPlan != nil {
		items = append(items, "Ctrl+Y Copy plan")
	}
	return items
}

// Form returns the underlying form state.
func (m FormModel) Form() *lesson.Form {
	return m.form
}

// FocusedField returns the field with focus.
func (m FormModel) FocusedField() FormField {
	return m.focus
}

// Focused reports whether the form has focus.
func (m FormModel) Focused() bool {
	return m.focused
}

// LastPlan returns the most recently created plan.
func (m FormModel) LastPlan() (lesson.Draft, bool) {
	if m.lastPlan == nil {
		return lesson.Draft{}, false
	}
	return *m.lastPlan, true
}

// ChipCursor returns the selected chip index, or -1.
func (m FormModel) ChipCursor() int {
	return m.chipCursor
}

// Notice returns the current toast text.
func (m FormModel) Notice() string {
	return m.notice
}

func fieldNames(errs lesson.ValidationErrors) []string {
	fields := errs.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

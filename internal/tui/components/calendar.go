package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/pablasso/lessonplan/internal/tui/styles"
)

// Calendar is a month-grid date picker. The cursor always points at a day;
// the selection is optional.
type Calendar struct {
	cursor   time.Time
	selected time.Time
	today    time.Time
	focused  bool
}

// NewCalendar creates a calendar with the cursor on today.
func NewCalendar(today time.Time) Calendar {
	today = day(today)
	return Calendar{cursor: today, today: today}
}

// Focus shows the cursor.
func (c *Calendar) Focus() { c.focused = true }

// Blur hides the cursor.
func (c *Calendar) Blur() { c.focused = false }

// Focused reports whether the calendar has focus.
func (c Calendar) Focused() bool { return c.focused }

// Cursor returns the day under the cursor.
func (c Calendar) Cursor() time.Time { return c.cursor }

// Selected returns the selected day, if any.
func (c Calendar) Selected() (time.Time, bool) {
	return c.selected, !c.selected.IsZero()
}

// SetSelected selects t and moves the cursor there. The zero time clears the
// selection and leaves the cursor alone.
func (c *Calendar) SetSelected(t time.Time) {
	if t.IsZero() {
		c.selected = time.Time{}
		return
	}
	c.selected = day(t)
	c.cursor = c.selected
}

// HandleKey applies a navigation or selection key and reports whether the
// selection changed.
//
//	←/→      previous/next day
//	↑/↓      previous/next week
//	[ / ]    previous/next month
//	t        jump to today
//	enter    select the cursor day
//	space    select the cursor day
//	x        clear the selection
func (c *Calendar) HandleKey(key string) bool {
	switch key {
	case "left", "h":
		c.cursor = c.cursor.AddDate(0, 0, -1)
	case "right", "l":
		c.cursor = c.cursor.AddDate(0, 0, 1)
	case "up", "k":
		c.cursor = c.cursor.AddDate(0, 0, -7)
	case "down", "j":
		c.cursor = c.cursor.AddDate(0, 0, 7)
	case "[", "pgup":
		c.cursor = addMonths(c.cursor, -1)
	case "]", "pgdown":
		c.cursor = addMonths(c.cursor, 1)
	case "t":
		c.cursor = c.today
	case "enter", " ":
		if c.selected.Equal(c.cursor) {
			return false
		}
		c.selected = c.cursor
		return true
	case "x", "delete", "backspace":
		if c.selected.IsZero() {
			return false
		}
		c.selected = time.Time{}
		return true
	}
	return false
}

// View renders the month containing the cursor.
func (c Calendar) View() string {
	first := time.Date(c.cursor.Year(), c.cursor.Month(), 1, 0, 0, 0, 0, c.cursor.Location())
	days := first.AddDate(0, 1, -1).Day()

	var b strings.Builder
	header := fmt.Sprintf("‹ %s %d ›", first.Month(), first.Year())
	b.WriteString(fmt.Sprintf("%-20s", header))
	b.WriteString("\n")
	b.WriteString(styles.SubtleStyle.Render("Su Mo Tu We Th Fr Sa"))

	col := int(first.Weekday())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("   ", col))

	for d := 1; d <= days; d++ {
		date := first.AddDate(0, 0, d-1)
		b.WriteString(c.renderDay(date))

		col++
		if col == 7 && d < days {
			b.WriteString("\n")
			col = 0
		} else if d < days {
			b.WriteString(" ")
		}
	}

	return b.String()
}

func (c Calendar) renderDay(date time.Time) string {
	cell := fmt.Sprintf("%2d", date.Day())
	switch {
	case c.focused && date.Equal(c.cursor):
		return styles.SelectedChipStyle.Padding(0).Render(cell)
	case date.Equal(c.selected):
		return styles.SelectedStyle.Render(cell)
	case date.Equal(c.today):
		return styles.TodayStyle.Render(cell)
	}
	return cell
}

// day truncates t to midnight in its own location.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// addMonths moves by n months, clamping the day to the target month's length
// so Jan 31 + 1 month is Feb 28/29 rather than early March.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(t.Day(), last)-1)
}

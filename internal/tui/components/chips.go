package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pablasso/lessonplan/internal/tui/styles"
)

// RenderChips lays out tags as chips, wrapping to width. selected is the
// index of the highlighted chip, or -1.
func RenderChips(tags []string, selected, width int) string {
	if len(tags) == 0 {
		return ""
	}

	var rows []string
	var row []string
	rowWidth := 0

	for i, tag := range tags {
		style := styles.ChipStyle
		if i == selected {
			style = styles.SelectedChipStyle
		}
		chip := style.Render(tag + " ×")
		w := lipgloss.Width(chip)

		if len(row) > 0 && width > 0 && rowWidth+1+w > width {
			rows = append(rows, strings.Join(row, " "))
			row, rowWidth = nil, 0
		}
		if len(row) > 0 {
			rowWidth++
		}
		row = append(row, chip)
		rowWidth += w
	}
	rows = append(rows, strings.Join(row, " "))

	return strings.Join(rows, "\n")
}

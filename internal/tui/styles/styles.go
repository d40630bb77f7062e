// Package styles defines shared lipgloss styles for the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	primaryColor   = lipgloss.Color("#5FAFAF") // Teal accent
	secondaryColor = lipgloss.Color("#666666") // Gray for secondary text
	successColor   = lipgloss.Color("#87AF87") // Muted sage for success
	errorColor     = lipgloss.Color("#AF5F5F") // Muted terracotta for errors
	chipColor      = lipgloss.Color("#3A3A3A")
	userColor      = lipgloss.Color("#D7AF87") // Warm sand for the user's messages

	// TitleStyle for headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// SubtleStyle for hints/help text
	SubtleStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// SelectedStyle for selected items in lists
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	// StatusBarStyle for bottom status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	// BoxStyle for panel borders
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	// FocusedBoxStyle is BoxStyle for the pane that has focus.
	FocusedBoxStyle = BoxStyle.
			BorderForeground(primaryColor)

	// SuccessStyle for success messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// ErrorStyle for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// LabelStyle for form field labels.
	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	// FocusedLabelStyle for the label of the focused field.
	FocusedLabelStyle = LabelStyle.
				Foreground(primaryColor)

	// InputStyle wraps text inputs.
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(secondaryColor).
			Padding(0, 1)

	// FocusedInputStyle wraps the focused input.
	FocusedInputStyle = InputStyle.
				BorderForeground(primaryColor)

	// ErrorInputStyle wraps an input whose field failed validation.
	ErrorInputStyle = InputStyle.
			BorderForeground(errorColor)

	// ChipStyle for tag chips.
	ChipStyle = lipgloss.NewStyle().
			Background(chipColor).
			Foreground(lipgloss.Color("#DADADA")).
			Padding(0, 1)

	// SelectedChipStyle for the chip under the cursor.
	SelectedChipStyle = lipgloss.NewStyle().
				Background(primaryColor).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true).
				Padding(0, 1)

	// ButtonStyle for the submit button.
	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(secondaryColor).
			Padding(0, 3)

	// FocusedButtonStyle for the submit button when focused.
	FocusedButtonStyle = ButtonStyle.
				Background(primaryColor).
				Bold(true)

	// UserMessageStyle for the user's side of the chat.
	UserMessageStyle = lipgloss.NewStyle().
				Foreground(userColor)

	// TodayStyle marks today in the calendar.
	TodayStyle = lipgloss.NewStyle().
			Underline(true)
)

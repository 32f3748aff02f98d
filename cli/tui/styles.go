package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/weversonbarbieri/accountant-pdf-extract/controller"
)

// Color palette.
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	successColor   = lipgloss.Color("#10B981") // Green
	warningColor   = lipgloss.Color("#F59E0B") // Amber
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	highlightColor = lipgloss.Color("#3B82F6") // Blue
)

// Styles for TUI components.
var (
	// TitleStyle for headers and titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	// LabelStyle for field labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(16)

	// ValueStyle for field values.
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	// SuccessStyle for success states.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	// WarningStyle for warning states.
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// ErrorStyle for error states.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	// BoxStyle for bordered containers.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	// TabStyle for inactive tab headers.
	TabStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 2)

	// ActiveTabStyle for the selected tab header.
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Underline(true).
			Padding(0, 2)

	// CursorStyle for the focused list row.
	CursorStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	// DropZoneStyle for the staging area.
	DropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	// DropZoneActiveStyle for the staging area while files are dragged over it.
	DropZoneActiveStyle = DropZoneStyle.
				BorderForeground(highlightColor)

	// ModalStyle for the delete confirmation dialog.
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(errorColor).
			Padding(1, 3)
)

// StateStyle returns a style based on the state string.
func StateStyle(state string) lipgloss.Style {
	switch state {
	case "succeeded", "success", "idle":
		return SuccessStyle
	case "in_flight", "warning":
		return WarningStyle
	case "failed", "error":
		return ErrorStyle
	default:
		return ValueStyle
	}
}

// NoticeStyle returns the style for a notice of the given kind.
func NoticeStyle(kind controller.NoticeKind) lipgloss.Style {
	switch kind {
	case controller.NoticeSuccess:
		return SuccessStyle
	case controller.NoticeWarning:
		return WarningStyle
	case controller.NoticeError:
		return ErrorStyle
	default:
		return LabelStyle.Width(0)
	}
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Color scheme (exported for view helpers)
	PrimaryColor   = lipgloss.Color("39")  // Blue
	SecondaryColor = lipgloss.Color("213") // Pink
	SuccessColor   = lipgloss.Color("42")  // Green
	ErrorColor     = lipgloss.Color("196") // Red
	WarningColor   = lipgloss.Color("214") // Orange
	MutedColor     = lipgloss.Color("243") // Gray
	BorderColor    = lipgloss.Color("238") // Dark gray

	// Base styles
	BaseStyle = lipgloss.NewStyle()

	// Header styles
	HeaderStyle = BaseStyle.Copy().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	StatusStyle = BaseStyle.Copy().
			Foreground(MutedColor).
			Padding(0, 1)

	// Footer styles
	FooterStyle = BaseStyle.Copy().
			Foreground(MutedColor).
			Padding(0, 1)

	ShortcutKeyStyle = BaseStyle.Copy().
				Foreground(PrimaryColor).
				Bold(true)

	ShortcutDescStyle = BaseStyle.Copy().
				Foreground(lipgloss.Color("252"))

	// Message pane styles
	MessagePaneStyle = BaseStyle.Copy().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderColor).
				Padding(0, 1)

	PresencePaneStyle = BaseStyle.Copy().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(BorderColor).
				Padding(0, 1)

	PresenceTitleStyle = BaseStyle.Copy().
				Bold(true).
				Foreground(PrimaryColor)

	// Message styles
	MessageAuthorStyle = BaseStyle.Copy().
				Foreground(SecondaryColor)

	MessageOwnAuthorStyle = BaseStyle.Copy().
				Foreground(SuccessColor).
				Bold(true)

	MessageTimeStyle = BaseStyle.Copy().
				Foreground(MutedColor).
				Italic(true)

	MessageContentStyle = BaseStyle.Copy().
				Foreground(lipgloss.Color("252"))

	MessageDeletedStyle = BaseStyle.Copy().
				Foreground(MutedColor).
				Italic(true)

	MessageEditedStyle = BaseStyle.Copy().
				Foreground(MutedColor)

	SelectedMessageStyle = BaseStyle.Copy().
				Foreground(PrimaryColor).
				Bold(true)

	// Reaction styles
	ReactionGroupStyle = BaseStyle.Copy().
				Foreground(lipgloss.Color("252"))

	ReactionOwnStyle = BaseStyle.Copy().
				Foreground(PrimaryColor).
				Bold(true)

	ReactionOverflowStyle = BaseStyle.Copy().
				Foreground(MutedColor).
				Italic(true)

	// Error/success styles
	ErrorStyle = BaseStyle.Copy().
			Foreground(ErrorColor).
			Bold(true)

	SuccessStyle = BaseStyle.Copy().
			Foreground(SuccessColor).
			Bold(true)

	// Muted text style
	MutedTextStyle = BaseStyle.Copy().
			Foreground(MutedColor)
)

// RenderShortcut renders a keyboard shortcut
func RenderShortcut(key, desc string) string {
	return ShortcutKeyStyle.Render("["+key+"]") + " " + ShortcutDescStyle.Render(desc)
}

// RenderError renders an error message
func RenderError(msg string) string {
	return ErrorStyle.Render("✗ " + msg)
}

// RenderSuccess renders a success message
func RenderSuccess(msg string) string {
	return SuccessStyle.Render("✓ " + msg)
}

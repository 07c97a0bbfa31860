package modal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReactionPickerModal lets the user pick an emoji to react with
type ReactionPickerModal struct {
	palette  []string
	cursor   int
	onSelect func(emoji string) tea.Cmd
	onCancel func() tea.Cmd
}

// NewReactionPickerModal creates a picker over the given emoji palette
func NewReactionPickerModal(palette []string, onSelect func(string) tea.Cmd, onCancel func() tea.Cmd) *ReactionPickerModal {
	return &ReactionPickerModal{
		palette:  palette,
		onSelect: onSelect,
		onCancel: onCancel,
	}
}

// Type returns the modal type
func (m *ReactionPickerModal) Type() ModalType {
	return ModalReactionPicker
}

// HandleKey processes keyboard input
func (m *ReactionPickerModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
		return true, m, nil

	case "right", "l":
		if m.cursor < len(m.palette)-1 {
			m.cursor++
		}
		return true, m, nil

	case "enter", " ":
		if len(m.palette) == 0 {
			return true, nil, nil
		}
		var cmd tea.Cmd
		if m.onSelect != nil {
			cmd = m.onSelect(m.palette[m.cursor])
		}
		return true, nil, cmd // Close modal

	case "esc":
		var cmd tea.Cmd
		if m.onCancel != nil {
			cmd = m.onCancel()
		}
		return true, nil, cmd // Close modal

	default:
		// Digit keys select directly
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			idx := int(s[0] - '1')
			if idx < len(m.palette) {
				var cmd tea.Cmd
				if m.onSelect != nil {
					cmd = m.onSelect(m.palette[idx])
				}
				return true, nil, cmd
			}
		}
		// Consume all other keys
		return true, m, nil
	}
}

// Render returns the modal content
func (m *ReactionPickerModal) Render(width, height int) string {
	modalTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("170")).
		Bold(true).
		Underline(true)

	unselectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	mutedTextStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(1, 2).
		Background(lipgloss.Color("235"))

	var cells []string
	for i, emoji := range m.palette {
		cell := fmt.Sprintf("%d %s", i+1, emoji)
		if i == m.cursor {
			cells = append(cells, selectedStyle.Render(cell))
		} else {
			cells = append(cells, unselectedStyle.Render(cell))
		}
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		modalTitleStyle.Render("Add Reaction"),
		strings.Join(cells, "   "),
		"",
		mutedTextStyle.Render("[←/→] Move  [Enter] React  [1-9] Quick pick  [Esc] Cancel"),
	)

	modal := modalStyle.Render(content)

	// Center the modal
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// IsBlockingInput returns true (this modal blocks all input)
func (m *ReactionPickerModal) IsBlockingInput() bool {
	return true
}

package modal

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ReactionMenuModal is the menu shown after tapping an existing emoji group:
// show the full reactor list, add the user's own reaction, remove it, or
// cancel. Whether "add" or "remove" applies is the caller's decision (it has
// the snapshot); both callbacks are offered and either may be nil.
type ReactionMenuModal struct {
	emoji       string
	count       int
	userReacted bool
	onShowAll   func() tea.Cmd
	onAdd       func(emoji string) tea.Cmd
	onRemove    func(emoji string) tea.Cmd
	onCancel    func() tea.Cmd
}

// NewReactionMenuModal creates a menu for one emoji group
func NewReactionMenuModal(emoji string, count int, userReacted bool,
	onShowAll func() tea.Cmd,
	onAdd func(string) tea.Cmd,
	onRemove func(string) tea.Cmd,
	onCancel func() tea.Cmd) *ReactionMenuModal {
	return &ReactionMenuModal{
		emoji:       emoji,
		count:       count,
		userReacted: userReacted,
		onShowAll:   onShowAll,
		onAdd:       onAdd,
		onRemove:    onRemove,
		onCancel:    onCancel,
	}
}

// Type returns the modal type
func (m *ReactionMenuModal) Type() ModalType {
	return ModalReactionMenu
}

// HandleKey processes keyboard input
func (m *ReactionMenuModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "s", "a":
		// Show all reactions
		var cmd tea.Cmd
		if m.onShowAll != nil {
			cmd = m.onShowAll()
		}
		return true, nil, cmd // Close modal

	case "+", "enter":
		if m.userReacted {
			// Tapping an emoji you already used removes it
			var cmd tea.Cmd
			if m.onRemove != nil {
				cmd = m.onRemove(m.emoji)
			}
			return true, nil, cmd
		}
		var cmd tea.Cmd
		if m.onAdd != nil {
			cmd = m.onAdd(m.emoji)
		}
		return true, nil, cmd

	case "-", "r":
		if !m.userReacted {
			// Nothing of ours to remove; stay open
			return true, m, nil
		}
		var cmd tea.Cmd
		if m.onRemove != nil {
			cmd = m.onRemove(m.emoji)
		}
		return true, nil, cmd

	case "esc":
		var cmd tea.Cmd
		if m.onCancel != nil {
			cmd = m.onCancel()
		}
		return true, nil, cmd

	default:
		// Consume all other keys (don't let them fall through)
		return true, m, nil
	}
}

// Render returns the modal content
func (m *ReactionMenuModal) Render(width, height int) string {
	modalTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	mutedTextStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(1, 2).
		Background(lipgloss.Color("235"))

	title := modalTitleStyle.Render(fmt.Sprintf("%s  %d", m.emoji, m.count))

	action := "[Enter] Add yours"
	if m.userReacted {
		action = "[Enter] Remove yours"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		mutedTextStyle.Render("[s] Show all  "+action+"  [Esc] Cancel"),
	)

	modal := modalStyle.Render(content)

	// Center the modal
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// IsBlockingInput returns true (this modal blocks all input)
func (m *ReactionMenuModal) IsBlockingInput() bool {
	return true
}

package modal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/reactchat/pkg/client/reactions"
)

// ReactionListModal is the "show all" sheet: the uncapped, per-author
// reaction list for one message
type ReactionListModal struct {
	items  []reactions.Item
	offset int
}

// NewReactionListModal creates a full-list sheet from already-built items
func NewReactionListModal(items []reactions.Item) *ReactionListModal {
	return &ReactionListModal{items: items}
}

// Type returns the modal type
func (m *ReactionListModal) Type() ModalType {
	return ModalReactionList
}

const reactionListPageSize = 12

// HandleKey processes keyboard input
func (m *ReactionListModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
		return true, m, nil

	case "down", "j":
		if m.offset < len(m.items)-reactionListPageSize {
			m.offset++
		}
		return true, m, nil

	case "esc", "enter", "a":
		// Close the sheet
		return true, nil, nil

	default:
		// Consume all other keys (don't let them fall through)
		return true, m, nil
	}
}

// Render returns the modal content
func (m *ReactionListModal) Render(width, height int) string {
	modalTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	authorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("213")).
		Width(20)

	countStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	mutedTextStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Padding(1, 2).
		Background(lipgloss.Color("235"))

	var lines []string
	if len(m.items) == 0 {
		lines = append(lines, mutedTextStyle.Render("No reactions yet"))
	} else {
		end := m.offset + reactionListPageSize
		if end > len(m.items) {
			end = len(m.items)
		}
		for _, item := range m.items[m.offset:end] {
			line := authorStyle.Render(item.Author) + " " + item.Emoji
			if item.Count > 1 {
				line += " " + countStyle.Render(fmt.Sprintf("×%d", item.Count))
			}
			lines = append(lines, line)
		}
		if len(m.items) > reactionListPageSize {
			lines = append(lines, "", mutedTextStyle.Render(
				fmt.Sprintf("%d-%d of %d  [↑/↓] Scroll", m.offset+1, end, len(m.items))))
		}
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		modalTitleStyle.Render("Reactions"),
		strings.Join(lines, "\n"),
		"",
		mutedTextStyle.Render("[Esc] Close"),
	)

	modal := modalStyle.Render(content)

	// Center the modal
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal)
}

// IsBlockingInput returns true (this modal blocks all input)
func (m *ReactionListModal) IsBlockingInput() bool {
	return true
}

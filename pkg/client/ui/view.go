package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/76creates/stickers/flexbox"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/reactchat/pkg/chatkit"
	"github.com/aeolun/reactchat/pkg/client"
	"github.com/aeolun/reactchat/pkg/client/reactions"
)

// View renders the channel view
func (m Model) View() string {
	// Don't render until we have dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Connectivity overlays replace the whole screen, unless a modal is up
	if m.connectionState == StateDisconnected && m.modalStack.IsEmpty() {
		return m.renderDisconnectedOverlay()
	}
	if m.connectionState == StateReconnecting && m.modalStack.IsEmpty() {
		return m.renderReconnectingOverlay()
	}

	baseView := m.renderChannel()

	if !m.modalStack.IsEmpty() {
		if activeModal := m.modalStack.Top(); activeModal != nil {
			return activeModal.Render(m.width, m.height)
		}
	}

	return baseView
}

// renderChannel renders the channel view using flexbox for stable layout
func (m Model) renderChannel() string {
	layout := flexbox.New(m.width, m.height)

	// Row 1: Header (fixed height = 1)
	headerRow := layout.NewRow().AddCells(
		flexbox.NewCell(1, 1).SetContent(m.renderHeader()),
	)

	// Row 2: Content (flexible = remaining height)
	contentHeight := m.height - 2 // Subtract header(1) + footer(1)
	contentRow := layout.NewRow().AddCells(
		flexbox.NewCell(1, contentHeight).SetContent(m.renderContent(contentHeight)),
	)

	// Row 3: Footer (fixed height = 1)
	footerRow := layout.NewRow().AddCells(
		flexbox.NewCell(1, 1).SetContent(m.renderFooter()),
	)

	layout.AddRows([]*flexbox.Row{headerRow, contentRow, footerRow})

	return layout.Render()
}

// renderContent lays out the message pane next to the presence sidebar
func (m Model) renderContent(height int) string {
	layout := flexbox.NewHorizontal(m.width, height)

	// Column 1: Messages (ratioX=3 = 75% of width)
	messageCol := layout.NewColumn().AddCells(
		flexbox.NewCell(3, 1).
			SetStyle(MessagePaneStyle).
			SetContent(m.messageView.View()),
	)

	// Column 2: Presence sidebar (ratioX=1 = 25% of width)
	presenceCol := layout.NewColumn().AddCells(
		flexbox.NewCell(1, 1).
			SetStyle(PresencePaneStyle).
			SetContent(m.renderPresencePane()),
	)

	layout.AddColumns([]*flexbox.Column{messageCol, presenceCol})

	return layout.Render()
}

// renderHeader renders the top status bar
func (m Model) renderHeader() string {
	left := HeaderStyle.Render("ReactChat #" + m.channelID)

	status := "Disconnected"
	switch m.connectionState {
	case StateConnected:
		status = "Connected"
		if m.nickname != "" {
			status = fmt.Sprintf("Connected: %s", m.nickname)
		}
		if len(m.online) > 0 {
			status += fmt.Sprintf("  %d online", len(m.online))
		}
	case StateReconnecting:
		status = fmt.Sprintf("Reconnecting (attempt %d)", m.reconnectAttempt)
	}

	right := StatusStyle.Render(status)

	spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(left)-lipgloss.Width(right)))

	return left + spacer + right
}

// renderFooter renders the shortcut bar with any pending error
func (m Model) renderFooter() string {
	parts := []string{
		RenderShortcut("↑/↓", "Select"),
		RenderShortcut("Enter", "Compose"),
		RenderShortcut("Space", "React"),
		RenderShortcut("1-5", "Tap group"),
		RenderShortcut("a", "All reactions"),
		RenderShortcut("?", "Help"),
	}
	footerContent := strings.Join(parts, " ")

	if m.statusMessage != "" {
		footerContent += "  " + RenderSuccess(m.statusMessage)
	}
	if m.errorMessage != "" {
		footerContent += "  " + RenderError(m.errorMessage)
	}

	return FooterStyle.Render(footerContent)
}

// renderPresencePane renders the online member list
func (m Model) renderPresencePane() string {
	var b strings.Builder
	b.WriteString(PresenceTitleStyle.Render(fmt.Sprintf("Online (%d)", len(m.online))))
	b.WriteString("\n\n")

	names := make([]string, 0, len(m.online))
	for _, nickname := range m.online {
		names = append(names, nickname)
	}
	sort.Strings(names)

	if len(names) == 0 {
		b.WriteString(MutedTextStyle.Render("Nobody here yet"))
	}
	for _, name := range names {
		b.WriteString("● " + name + "\n")
	}

	return b.String()
}

// resizeMessageView sizes the viewport to the message pane
func (m *Model) resizeMessageView() {
	// Pane takes 3/4 of the width; subtract border(2) + padding(2)
	paneWidth := m.width*3/4 - 4
	paneHeight := m.height - 4 // header, footer, pane border
	if paneWidth < 10 {
		paneWidth = 10
	}
	if paneHeight < 3 {
		paneHeight = 3
	}

	if m.messageView.Width == 0 {
		m.messageView = viewport.New(paneWidth, paneHeight)
	} else {
		m.messageView.Width = paneWidth
		m.messageView.Height = paneHeight
	}
	m.refreshMessageView()
}

// refreshMessageView rebuilds the viewport content and keeps the cursor visible
func (m *Model) refreshMessageView() {
	if m.messageView.Width == 0 {
		return
	}

	content, cursorLine := m.buildMessageContent()
	m.messageView.SetContent(content)

	// Scroll so the selected message stays on screen
	if cursorLine < m.messageView.YOffset {
		m.messageView.SetYOffset(cursorLine)
	} else if cursorLine >= m.messageView.YOffset+m.messageView.Height {
		m.messageView.SetYOffset(cursorLine - m.messageView.Height + 1)
	}
}

// buildMessageContent renders all messages and reports the line the cursor is on
func (m *Model) buildMessageContent() (string, int) {
	if len(m.messages) == 0 {
		return MutedTextStyle.Render("No messages yet. Press [Enter] to say something."), 0
	}

	var b strings.Builder
	cursorLine := 0
	line := 0
	for i := range m.messages {
		if i == m.cursor {
			cursorLine = line
		}
		block := m.renderMessage(&m.messages[i], i == m.cursor)
		b.WriteString(block)
		b.WriteString("\n")
		line += strings.Count(block, "\n") + 1
	}

	return b.String(), cursorLine
}

// renderMessage renders one message row with its inline reaction summary
func (m *Model) renderMessage(msg *chatkit.Message, selected bool) string {
	indicator := "  "
	if selected {
		indicator = SelectedMessageStyle.Render("▸ ")
	}

	authorStyle := MessageAuthorStyle
	if m.ownMessage(msg) {
		authorStyle = MessageOwnAuthorStyle
	}

	header := indicator + authorStyle.Render(msg.Author)
	if m.showTimestamps {
		ts := client.FormatRelativeTime(msg.CreatedAt)
		if m.absoluteTimes {
			ts = client.FormatAbsoluteTime(msg.CreatedAt)
		}
		header += " " + MessageTimeStyle.Render(ts)
	}
	if msg.EditedAt != nil && !msg.Deleted {
		header += " " + MessageEditedStyle.Render("(edited)")
	}

	var body string
	if msg.Deleted {
		body = "  " + MessageDeletedStyle.Render("[message deleted]")
	} else {
		body = "  " + MessageContentStyle.Render(msg.Content)
	}

	lines := []string{header, body}

	if row := m.renderSummaryRow(msg); row != "" {
		lines = append(lines, "  "+row)
	}

	return strings.Join(lines, "\n")
}

// renderSummaryRow renders the capped inline reaction row for a message:
// up to reactions.SummaryLimit groups plus an overflow marker.
func (m *Model) renderSummaryRow(msg *chatkit.Message) string {
	row := reactions.BuildSummaryRow(msg.Reactions)
	if len(row) == 0 {
		return ""
	}

	userID := m.session.UserID()
	parts := make([]string, 0, len(row)+1)
	for i, entry := range row {
		style := ReactionGroupStyle
		if reactions.ClassifyTap(msg.Reactions, entry.Emoji, userID).Kind == reactions.RemoveOwnReaction {
			// Highlight groups the user is part of
			style = ReactionOwnStyle
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%d] %s %d", i+1, entry.Emoji, entry.Count)))
	}

	if overflow := reactions.Overflow(msg.Reactions); overflow > 0 {
		parts = append(parts, ReactionOverflowStyle.Render(fmt.Sprintf("+%d more", overflow)))
	}

	return strings.Join(parts, " ")
}

// renderDisconnectedOverlay renders the full-screen connection lost message
func (m Model) renderDisconnectedOverlay() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ErrorColor).
		Align(lipgloss.Center).
		MarginBottom(2).
		Render("⚠  CONNECTION LOST  ⚠")

	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render("The connection to the server has been lost.")

	hint := MutedTextStyle.Render("[q] Quit")

	content := lipgloss.JoinVertical(lipgloss.Center, "", title, message, hint)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ErrorColor).
		Padding(1, 4).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderReconnectingOverlay renders the full-screen reconnect progress
func (m Model) renderReconnectingOverlay() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(WarningColor).
		Align(lipgloss.Center).
		MarginBottom(2).
		Render("RECONNECTING...")

	message := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(fmt.Sprintf("Attempt %d", m.reconnectAttempt))

	content := lipgloss.JoinVertical(lipgloss.Center, "", title, message)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(WarningColor).
		Padding(1, 4).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

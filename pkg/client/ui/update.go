package ui

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/reactchat/pkg/chatkit"
	"github.com/aeolun/reactchat/pkg/client"
	"github.com/aeolun/reactchat/pkg/client/reactions"
	"github.com/aeolun/reactchat/pkg/client/ui/modal"
)

// showAllReactionsMsg asks for the full-list sheet of a message. It arrives
// via tea.Cmd from the reaction menu so the modal push happens on the
// current model copy, not a stale one captured in a closure.
type showAllReactionsMsg struct {
	messageID string
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeMessageView()
		return m, nil

	case SessionEventMsg:
		return m.handleSessionEvent(msg.Event)

	case ErrorMsg:
		m.errorMessage = msg.Err.Error()
		return m, listenForSessionEvents(m.session)

	case ConnectedMsg:
		m.connectionState = StateConnected
		m.reconnectAttempt = 0
		m.errorMessage = ""
		return m, listenForSessionEvents(m.session)

	case DisconnectedMsg:
		m.connectionState = StateDisconnected
		m.errorMessage = ""
		return m, listenForSessionEvents(m.session)

	case ReconnectingMsg:
		m.connectionState = StateReconnecting
		m.reconnectAttempt = msg.Attempt
		m.errorMessage = ""
		return m, listenForSessionEvents(m.session)

	case showAllReactionsMsg:
		return m.openFullList(msg.messageID)

	case TickMsg:
		// Refresh relative timestamps
		m.refreshMessageView()
		return m, tickCmd()
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An open modal gets the key first
	if !m.modalStack.IsEmpty() {
		handled, cmd := m.modalStack.HandleKey(msg)
		if m.modalStack.IsEmpty() {
			// Whatever overlay was open is gone; settle the owning panel
			m.dismissPanels()
		}
		if handled {
			return m, cmd
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?", "h":
		m.modalStack.Push(modal.NewHelpModal(helpContent()))
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			m.refreshMessageView()
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.messages)-1 {
			m.cursor++
			m.refreshMessageView()
		}
		return m, nil

	case "enter", "c":
		return m.openCompose()

	case "e":
		return m.openEdit()

	case "d":
		return m.openDeleteConfirm()

	case " ", "x":
		return m.openPicker()

	case "a":
		if sel, ok := m.selectedMessage(); ok {
			if m.panel(sel.ID).OpenFullList() {
				m.modalStack.Push(modal.NewReactionListModal(reactions.BuildFullList(sel.Reactions)))
			}
		}
		return m, nil

	case "1", "2", "3", "4", "5":
		return m.tapSummaryGroup(int(msg.String()[0] - '1'))
	}

	return m, nil
}

// helpContent lists the channel view shortcuts
func helpContent() [][]string {
	return [][]string{
		{"↑/k ↓/j", "Move between messages"},
		{"Enter / c", "Compose a message"},
		{"e", "Edit your message"},
		{"d", "Delete your message"},
		{"Space / x", "Open reaction picker"},
		{"1-5", "Tap a reaction group"},
		{"a", "Show all reactions"},
		{"q", "Quit"},
	}
}

// openCompose opens the compose modal for a new message
func (m Model) openCompose() (tea.Model, tea.Cmd) {
	session := m.session
	channelID := m.channelID
	m.modalStack.Push(modal.NewComposeModal(modal.ComposeModeNew, "",
		func(content string) tea.Cmd {
			return func() tea.Msg {
				if err := session.SendMessage(channelID, content); err != nil {
					return ErrorMsg{Err: err}
				}
				return nil
			}
		},
		func() tea.Cmd { return nil },
	))
	return m, nil
}

// openEdit opens the compose modal pre-filled with the selected own message
func (m Model) openEdit() (tea.Model, tea.Cmd) {
	sel, ok := m.selectedMessage()
	if !ok || sel.Deleted || !m.ownMessage(sel) {
		return m, nil
	}

	session := m.session
	messageID := sel.ID
	m.modalStack.Push(modal.NewComposeModal(modal.ComposeModeEdit, sel.Content,
		func(content string) tea.Cmd {
			return func() tea.Msg {
				if err := session.EditMessage(messageID, content); err != nil {
					return ErrorMsg{Err: err}
				}
				return nil
			}
		},
		func() tea.Cmd { return nil },
	))
	return m, nil
}

// openDeleteConfirm asks before deleting the selected own message
func (m Model) openDeleteConfirm() (tea.Model, tea.Cmd) {
	sel, ok := m.selectedMessage()
	if !ok || sel.Deleted || !m.ownMessage(sel) {
		return m, nil
	}

	session := m.session
	m.modalStack.Push(modal.NewDeleteConfirmModal(sel.ID,
		func(messageID string) tea.Cmd {
			return func() tea.Msg {
				if err := session.DeleteMessage(messageID); err != nil {
					return ErrorMsg{Err: err}
				}
				return nil
			}
		},
		func() tea.Cmd { return nil },
	))
	return m, nil
}

// openPicker opens the emoji picker for the selected message
func (m Model) openPicker() (tea.Model, tea.Cmd) {
	sel, ok := m.selectedMessage()
	if !ok || sel.Deleted {
		return m, nil
	}

	p := m.panel(sel.ID)
	if !p.OpenPicker() {
		return m, nil
	}

	session := m.session
	messageID := sel.ID
	m.modalStack.Push(modal.NewReactionPickerModal(reactionPalette,
		func(emoji string) tea.Cmd {
			p.Dismiss()
			return func() tea.Msg {
				if err := session.AddReaction(messageID, emoji); err != nil {
					return ErrorMsg{Err: err}
				}
				return nil
			}
		},
		func() tea.Cmd {
			p.Dismiss()
			return nil
		},
	))
	return m, nil
}

// tapSummaryGroup opens the menu for the nth group in the inline summary row
func (m Model) tapSummaryGroup(n int) (tea.Model, tea.Cmd) {
	sel, ok := m.selectedMessage()
	if !ok || sel.Deleted {
		return m, nil
	}

	row := reactions.BuildSummaryRow(sel.Reactions)
	if n < 0 || n >= len(row) {
		return m, nil
	}

	emoji := row[n].Emoji
	p := m.panel(sel.ID)
	if !p.OpenMenu(emoji) {
		return m, nil
	}

	intent := reactions.ClassifyTap(sel.Reactions, emoji, m.session.UserID())
	userReacted := intent.Kind == reactions.RemoveOwnReaction

	session := m.session
	messageID := sel.ID
	m.modalStack.Push(modal.NewReactionMenuModal(emoji, row[n].Count, userReacted,
		func() tea.Cmd {
			// The full-list push must happen on the live model copy
			return func() tea.Msg {
				return showAllReactionsMsg{messageID: messageID}
			}
		},
		func(e string) tea.Cmd {
			p.Dismiss()
			return func() tea.Msg {
				if err := session.AddReaction(messageID, e); err != nil {
					return ErrorMsg{Err: err}
				}
				return nil
			}
		},
		func(e string) tea.Cmd {
			p.Dismiss()
			return func() tea.Msg {
				if err := session.DeleteReaction(messageID, e); err != nil {
					return ErrorMsg{Err: err}
				}
				return nil
			}
		},
		func() tea.Cmd {
			p.Dismiss()
			return nil
		},
	))
	return m, nil
}

// openFullList shows the uncapped reaction list for a message
func (m Model) openFullList(messageID string) (tea.Model, tea.Cmd) {
	idx, ok := m.byID[messageID]
	if !ok {
		return m, nil
	}
	p := m.panel(messageID)
	if !p.ShowAll() && !p.OpenFullList() {
		return m, nil
	}
	m.modalStack.Push(modal.NewReactionListModal(reactions.BuildFullList(m.messages[idx].Reactions)))
	return m, nil
}

// dismissPanels returns every reaction panel to idle. Only one overlay can
// be open at a time, so this settles at most one panel.
func (m *Model) dismissPanels() {
	for _, p := range m.panels {
		p.Dismiss()
	}
}

// handleSessionEvent applies one service event to the channel state. Each
// event carries a full snapshot where it matters, so reapplying a duplicate
// is harmless.
func (m Model) handleSessionEvent(ev chatkit.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case chatkit.EventMessagePosted:
		if ev.Message != nil && ev.Message.ChannelID == m.channelID {
			m.insertMessage(*ev.Message)
		}

	case chatkit.EventMessageEdited:
		if ev.Message != nil {
			if idx, ok := m.byID[ev.Message.ID]; ok {
				m.messages[idx].Content = ev.Message.Content
				m.messages[idx].EditedAt = ev.Message.EditedAt
			}
		}

	case chatkit.EventMessageDeleted:
		if idx, ok := m.byID[ev.MessageID]; ok {
			m.messages[idx].Deleted = true
		}

	case chatkit.EventReactionsChanged:
		// Replace the raw snapshot wholesale; the display structures are
		// recomputed from it at render time.
		if idx, ok := m.byID[ev.MessageID]; ok {
			m.messages[idx].Reactions = ev.Reactions.Clone()
		}

	case chatkit.EventPresence:
		if ev.Presence != nil {
			if ev.Presence.Online {
				m.online[ev.Presence.UserID] = ev.Presence.Nickname
			} else {
				delete(m.online, ev.Presence.UserID)
			}
		}

	case chatkit.EventError:
		if ev.Err != nil {
			// Mutation rejections surface here, unchanged; the aggregation
			// state stays valid regardless.
			m.errorMessage = ev.Err.Error()
		}
	}

	m.refreshMessageView()
	return m, listenForSessionEvents(m.session)
}

// insertMessage adds a message and restores display order
func (m *Model) insertMessage(msg chatkit.Message) {
	if _, exists := m.byID[msg.ID]; exists {
		// Duplicate delivery; the snapshot we have is as good as this one
		return
	}

	followTail := m.cursor == len(m.messages)-1 || len(m.messages) == 0

	msg.Reactions = msg.Reactions.Clone()
	m.messages = append(m.messages, msg)
	sort.SliceStable(m.messages, func(i, j int) bool {
		if !m.messages[i].CreatedAt.Equal(m.messages[j].CreatedAt) {
			return m.messages[i].CreatedAt.Before(m.messages[j].CreatedAt)
		}
		return m.messages[i].ID < m.messages[j].ID
	})
	m.reindex()

	if followTail {
		m.cursor = len(m.messages) - 1
	}

	// Remember how far we've read; losing this is not worth interrupting the UI
	_ = m.state.UpdateReadState(m.channelID, msg.CreatedAt.Unix(), msg.ID)

	if m.notifier != nil && !m.ownMessage(&msg) &&
		client.MentionsNickname(msg.Content, m.nickname) {
		m.notifier.NotifyMention(msg.Author, client.PreviewContent(msg.Content, 80))
	}
}

// reindex rebuilds the id -> position map after a sort
func (m *Model) reindex() {
	for i := range m.messages {
		m.byID[m.messages[i].ID] = i
	}
}

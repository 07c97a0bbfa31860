package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/reactchat/pkg/chatkit"
	"github.com/aeolun/reactchat/pkg/client"
	"github.com/aeolun/reactchat/pkg/client/reactions"
	"github.com/aeolun/reactchat/pkg/client/ui/modal"
)

// ConnectionState represents the session connectivity status
type ConnectionState int

const (
	StateConnected ConnectionState = iota
	StateDisconnected
	StateReconnecting
)

// reactionPalette is the fixed emoji set offered by the picker
var reactionPalette = []string{"👍", "🎉", "😂", "🔥", "❤️", "👀", "🚀"}

// Model represents the application state
type Model struct {
	// Session and state
	session          chatkit.Session
	state            client.StateInterface
	notifier         *client.Notifier
	connectionState  ConnectionState
	reconnectAttempt int

	// Modals
	modalStack modal.ModalStack

	// Channel state
	channelID string
	nickname  string
	messages  []chatkit.Message
	byID      map[string]int // message id -> index in messages
	online    map[string]string

	// Per-message reaction UI state, keyed by message id
	panels map[string]*reactions.Panel

	// UI state
	width          int
	height         int
	cursor         int
	messageView    viewport.Model
	showTimestamps bool
	absoluteTimes  bool

	// Error and status
	errorMessage  string
	statusMessage string
}

// NewModel creates a new application model
func NewModel(session chatkit.Session, state client.StateInterface, notifier *client.Notifier, channelID string, cfg client.TOMLConfig) Model {
	return Model{
		session:         session,
		state:           state,
		notifier:        notifier,
		connectionState: StateConnected,
		channelID:       channelID,
		nickname:        state.GetLastNickname(),
		byID:            make(map[string]int),
		online:          make(map[string]string),
		panels:          make(map[string]*reactions.Panel),
		showTimestamps:  cfg.UI.ShowTimestamps,
		absoluteTimes:   cfg.UI.TimestampFormat == "absolute",
	}
}

// Message types for bubbletea

// SessionEventMsg wraps an incoming service event
type SessionEventMsg struct {
	Event chatkit.Event
}

// ErrorMsg represents an error
type ErrorMsg struct {
	Err error
}

// ConnectedMsg is sent when successfully connected or reconnected
type ConnectedMsg struct{}

// DisconnectedMsg is sent when the session is lost
type DisconnectedMsg struct {
	Err error
}

// ReconnectingMsg is sent when attempting to reconnect
type ReconnectingMsg struct {
	Attempt int
}

// TickMsg is sent periodically to refresh relative timestamps
type TickMsg time.Time

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listenForSessionEvents(m.session),
		tickCmd(),
		m.joinChannel(),
	)
}

// joinChannel subscribes to the configured channel
func (m Model) joinChannel() tea.Cmd {
	session := m.session
	channelID := m.channelID
	return func() tea.Msg {
		if err := session.Join(channelID); err != nil {
			return ErrorMsg{Err: err}
		}
		return nil
	}
}

// listenForSessionEvents listens for service events and connectivity changes
func listenForSessionEvents(session chatkit.Session) tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-session.Events():
			return SessionEventMsg{Event: ev}
		case err := <-session.Errors():
			return ErrorMsg{Err: err}
		case update := <-session.StateChanges():
			switch update.State {
			case chatkit.StateTypeConnected:
				return ConnectedMsg{}
			case chatkit.StateTypeDisconnected:
				return DisconnectedMsg{Err: update.Err}
			case chatkit.StateTypeReconnecting:
				return ReconnectingMsg{Attempt: update.Attempt}
			}
		}
		return nil
	}
}

// tickCmd returns a command that sends a tick message every 30 seconds
// (keeps relative timestamps fresh without busy rendering)
func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// panel returns the reaction panel for a message row, creating it on first use
func (m *Model) panel(messageID string) *reactions.Panel {
	p, ok := m.panels[messageID]
	if !ok {
		p = &reactions.Panel{}
		m.panels[messageID] = p
	}
	return p
}

// selectedMessage returns the message under the cursor
func (m *Model) selectedMessage() (*chatkit.Message, bool) {
	if m.cursor < 0 || m.cursor >= len(m.messages) {
		return nil, false
	}
	return &m.messages[m.cursor], true
}

// ownMessage reports whether the current user authored the message
func (m *Model) ownMessage(msg *chatkit.Message) bool {
	return msg.AuthorID != "" && msg.AuthorID == m.session.UserID()
}

package ui

import (
	"fmt"
	"time"

	"github.com/aeolun/reactchat/pkg/chatkit"
	"github.com/aeolun/reactchat/pkg/client"
)

// mockSession is an in-memory Session for UI tests. Mutation calls are
// recorded so tests can assert what the model asked the service to do.
type mockSession struct {
	userID  string
	events  chan chatkit.Event
	errs    chan error
	states  chan chatkit.SessionStateUpdate
	joined  []string
	sent    []string
	edited  []string
	deleted []string
	reacted []string // "messageID emoji"
	removed []string // "messageID emoji"
}

func newMockSession(userID string) *mockSession {
	return &mockSession{
		userID: userID,
		events: make(chan chatkit.Event, 16),
		errs:   make(chan error, 16),
		states: make(chan chatkit.SessionStateUpdate, 16),
	}
}

func (s *mockSession) Connect() error    { return nil }
func (s *mockSession) Close()            {}
func (s *mockSession) IsConnected() bool { return true }
func (s *mockSession) UserID() string    { return s.userID }

func (s *mockSession) Join(channelID string) error {
	s.joined = append(s.joined, channelID)
	return nil
}

func (s *mockSession) Leave(channelID string) error { return nil }

func (s *mockSession) SendMessage(channelID, content string) error {
	s.sent = append(s.sent, content)
	return nil
}

func (s *mockSession) EditMessage(messageID, content string) error {
	s.edited = append(s.edited, messageID)
	return nil
}

func (s *mockSession) DeleteMessage(messageID string) error {
	s.deleted = append(s.deleted, messageID)
	return nil
}

func (s *mockSession) AddReaction(messageID, emoji string) error {
	s.reacted = append(s.reacted, messageID+" "+emoji)
	return nil
}

func (s *mockSession) DeleteReaction(messageID, emoji string) error {
	s.removed = append(s.removed, messageID+" "+emoji)
	return nil
}

func (s *mockSession) Events() <-chan chatkit.Event                    { return s.events }
func (s *mockSession) Errors() <-chan error                            { return s.errs }
func (s *mockSession) StateChanges() <-chan chatkit.SessionStateUpdate { return s.states }

// newTestModel builds a model around a mock session and mock state
func newTestModel(width, height int) (Model, *mockSession) {
	session := newMockSession("user-self")
	state := client.NewMockState()
	_ = state.SetLastNickname("selfie")

	cfg := client.DefaultTOMLConfig()
	m := NewModel(session, state, nil, "general", cfg)
	m.width = width
	m.height = height
	m.resizeMessageView()
	return m, session
}

// makeTestMessage builds a message with a stable timestamp offset
func makeTestMessage(id, authorID, author, content string, offsetSec int) chatkit.Message {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return chatkit.Message{
		ID:        id,
		ChannelID: "general",
		AuthorID:  authorID,
		Author:    author,
		Content:   content,
		CreatedAt: base.Add(time.Duration(offsetSec) * time.Second),
	}
}

// seedMessages inserts messages directly, bypassing the event path
func seedMessages(m *Model, msgs ...chatkit.Message) {
	for _, msg := range msgs {
		m.insertMessage(msg)
	}
}

// postedEvent wraps a message in a posted event
func postedEvent(msg chatkit.Message) chatkit.Event {
	return chatkit.Event{Kind: chatkit.EventMessagePosted, Message: &msg}
}

// reactionsEvent builds a reactions-changed event for a message
func reactionsEvent(messageID string, reactors map[string][]string) chatkit.Event {
	return chatkit.Event{
		Kind:      chatkit.EventReactionsChanged,
		MessageID: messageID,
		Reactions: chatkit.ReactionSummary{Reactors: reactors},
	}
}

// reactorIDs generates n distinct reactor ids
func reactorIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("user-%d", i)
	}
	return ids
}

package chatkit

import (
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wireMessage is the JSON shape of a message on the gateway socket.
type wireMessage struct {
	ID        string              `json:"id"`
	ChannelID string              `json:"channel_id"`
	AuthorID  string              `json:"author_id"`
	Author    string              `json:"author"`
	Content   string              `json:"content"`
	CreatedAt int64               `json:"created_at"`
	EditedAt  *int64              `json:"edited_at,omitempty"`
	Deleted   bool                `json:"deleted,omitempty"`
	Reactions map[string][]string `json:"reactions,omitempty"`
	Totals    map[string]int      `json:"totals,omitempty"`
}

// wireFrame is a single JSON frame in either direction.
type wireFrame struct {
	Op        string              `json:"op"`
	ChannelID string              `json:"channel_id,omitempty"`
	MessageID string              `json:"message_id,omitempty"`
	Emoji     string              `json:"emoji,omitempty"`
	Content   string              `json:"content,omitempty"`
	Nickname  string              `json:"nickname,omitempty"`
	UserID    string              `json:"user_id,omitempty"`
	Online    bool                `json:"online,omitempty"`
	Error     string              `json:"error,omitempty"`
	Message   *wireMessage        `json:"message,omitempty"`
	Reactions map[string][]string `json:"reactions,omitempty"`
	Totals    map[string]int      `json:"totals,omitempty"`
}

// WSSession is a Session backed by a chatkit gateway websocket. It only
// shuttles frames; ordering, acknowledgment, and retry of mutations are the
// gateway's business.
type WSSession struct {
	url      string
	nickname string

	ws        *websocket.Conn
	mu        sync.RWMutex
	connected bool
	userID    string
	joined    map[string]bool

	events      chan Event
	errors      chan error
	stateChange chan SessionStateUpdate

	// Auto-reconnect settings
	autoReconnect     bool
	reconnectDelay    time.Duration
	maxReconnectDelay time.Duration

	// Logging
	logger *log.Logger

	// Shutdown
	shutdown chan struct{}
	wg       sync.WaitGroup
	writeMu  sync.Mutex
}

// NewWSSession creates a session for the gateway at rawURL (ws:// or wss://).
func NewWSSession(rawURL, nickname string) (*WSSession, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid gateway URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("gateway URL must use ws:// or wss://, got %q", u.Scheme)
	}

	return &WSSession{
		url:               rawURL,
		nickname:          nickname,
		joined:            make(map[string]bool),
		events:            make(chan Event, 100),
		errors:            make(chan error, 10),
		stateChange:       make(chan SessionStateUpdate, 10),
		autoReconnect:     true,
		reconnectDelay:    1 * time.Second,
		maxReconnectDelay: 30 * time.Second,
		shutdown:          make(chan struct{}),
	}, nil
}

// SetLogger sets a logger for debugging session events
func (s *WSSession) SetLogger(logger *log.Logger) {
	s.logger = logger
}

// DisableAutoReconnect disables automatic reconnection on connection loss
func (s *WSSession) DisableAutoReconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoReconnect = false
}

// logf logs a message if a logger is set
func (s *WSSession) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// Connect establishes the gateway connection and starts the read loop.
func (s *WSSession) Connect() error {
	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		return fmt.Errorf("already connected")
	}
	s.mu.Unlock()

	s.logf("Connecting to %s...", s.url)

	if err := s.dial(); err != nil {
		return err
	}

	s.wg.Add(1)
	go s.readLoop()

	return nil
}

func (s *WSSession) dial() error {
	dialer := &websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	ws, _, err := dialer.Dial(s.url, nil)
	if err != nil {
		return fmt.Errorf("gateway dial failed: %w", err)
	}

	s.mu.Lock()
	s.ws = ws
	s.connected = true
	s.mu.Unlock()

	// Introduce ourselves; the gateway answers with a hello frame carrying
	// our assigned user id.
	if err := s.writeFrame(wireFrame{Op: "hello", Nickname: s.nickname}); err != nil {
		ws.Close()
		return err
	}

	return nil
}

// IsConnected reports whether the socket is currently up.
func (s *WSSession) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// UserID returns the client identifier assigned by the gateway, empty until
// the hello frame arrives.
func (s *WSSession) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Close shuts the session down and stops reconnection attempts.
func (s *WSSession) Close() {
	s.mu.Lock()
	s.autoReconnect = false
	if s.ws != nil {
		s.ws.Close()
	}
	s.connected = false
	s.mu.Unlock()

	close(s.shutdown)
	s.wg.Wait()
}

// Join subscribes to a channel's message and presence stream.
func (s *WSSession) Join(channelID string) error {
	s.mu.Lock()
	s.joined[channelID] = true
	s.mu.Unlock()
	return s.writeFrame(wireFrame{Op: "join", ChannelID: channelID})
}

// Leave unsubscribes from a channel.
func (s *WSSession) Leave(channelID string) error {
	s.mu.Lock()
	delete(s.joined, channelID)
	s.mu.Unlock()
	return s.writeFrame(wireFrame{Op: "leave", ChannelID: channelID})
}

// SendMessage posts a new message to a channel.
func (s *WSSession) SendMessage(channelID, content string) error {
	return s.writeFrame(wireFrame{Op: "send", ChannelID: channelID, Content: content})
}

// EditMessage replaces the content of one of our own messages.
func (s *WSSession) EditMessage(messageID, content string) error {
	return s.writeFrame(wireFrame{Op: "edit", MessageID: messageID, Content: content})
}

// DeleteMessage deletes one of our own messages.
func (s *WSSession) DeleteMessage(messageID string) error {
	return s.writeFrame(wireFrame{Op: "delete", MessageID: messageID})
}

// AddReaction adds the current user's reaction to a message.
func (s *WSSession) AddReaction(messageID, emoji string) error {
	return s.writeFrame(wireFrame{Op: "react", MessageID: messageID, Emoji: emoji})
}

// DeleteReaction removes the current user's reaction from a message.
func (s *WSSession) DeleteReaction(messageID, emoji string) error {
	return s.writeFrame(wireFrame{Op: "unreact", MessageID: messageID, Emoji: emoji})
}

// Events returns the channel for service-pushed events.
func (s *WSSession) Events() <-chan Event {
	return s.events
}

// Errors returns the channel for session errors.
func (s *WSSession) Errors() <-chan error {
	return s.errors
}

// StateChanges returns the channel for connectivity updates.
func (s *WSSession) StateChanges() <-chan SessionStateUpdate {
	return s.stateChange
}

func (s *WSSession) writeFrame(f wireFrame) error {
	s.mu.RLock()
	ws := s.ws
	connected := s.connected
	s.mu.RUnlock()

	if !connected || ws == nil {
		return fmt.Errorf("not connected")
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return ws.WriteJSON(f)
}

// readLoop reads frames until the socket dies, then hands off to the
// reconnect loop (or reports a terminal disconnect).
func (s *WSSession) readLoop() {
	defer s.wg.Done()

	for {
		s.mu.RLock()
		ws := s.ws
		s.mu.RUnlock()
		if ws == nil {
			return
		}

		var f wireFrame
		if err := ws.ReadJSON(&f); err != nil {
			select {
			case <-s.shutdown:
				return
			default:
			}

			s.mu.Lock()
			s.connected = false
			autoReconnect := s.autoReconnect
			s.mu.Unlock()

			if !autoReconnect {
				s.sendState(SessionStateUpdate{State: StateTypeDisconnected, Err: err})
				return
			}
			if !s.reconnectLoop(err) {
				return
			}
			continue
		}

		s.dispatch(f)
	}
}

// reconnectLoop retries the dial with exponential backoff until it succeeds
// or the session is shut down. Returns false when giving up for good.
func (s *WSSession) reconnectLoop(cause error) bool {
	delay := s.reconnectDelay

	for attempt := 1; ; attempt++ {
		s.sendState(SessionStateUpdate{State: StateTypeReconnecting, Attempt: attempt, Err: cause})
		s.logf("Reconnect attempt %d in %s", attempt, delay)

		select {
		case <-s.shutdown:
			return false
		case <-time.After(delay):
		}

		if err := s.dial(); err == nil {
			s.sendState(SessionStateUpdate{State: StateTypeConnected})

			// Re-subscribe to everything we were in before the drop.
			s.mu.RLock()
			channels := make([]string, 0, len(s.joined))
			for id := range s.joined {
				channels = append(channels, id)
			}
			s.mu.RUnlock()
			for _, id := range channels {
				if err := s.writeFrame(wireFrame{Op: "join", ChannelID: id}); err != nil {
					s.logf("Rejoin %s failed: %v", id, err)
				}
			}
			return true
		}

		delay *= 2
		if delay > s.maxReconnectDelay {
			delay = s.maxReconnectDelay
		}
	}
}

func (s *WSSession) dispatch(f wireFrame) {
	switch f.Op {
	case "hello":
		s.mu.Lock()
		s.userID = f.UserID
		s.mu.Unlock()
		s.sendState(SessionStateUpdate{State: StateTypeConnected})

	case "message":
		if f.Message != nil {
			s.sendEvent(Event{Kind: EventMessagePosted, Message: decodeMessage(f.Message)})
		}

	case "edited":
		if f.Message != nil {
			s.sendEvent(Event{Kind: EventMessageEdited, Message: decodeMessage(f.Message)})
		}

	case "deleted":
		s.sendEvent(Event{Kind: EventMessageDeleted, MessageID: f.MessageID})

	case "reactions":
		s.sendEvent(Event{
			Kind:      EventReactionsChanged,
			MessageID: f.MessageID,
			Reactions: ReactionSummary{Reactors: f.Reactions, Totals: f.Totals},
		})

	case "presence":
		s.sendEvent(Event{Kind: EventPresence, Presence: &PresenceEvent{
			UserID:   f.UserID,
			Nickname: f.Nickname,
			Online:   f.Online,
		}})

	case "error":
		// A rejected mutation surfaced asynchronously. Passed through
		// unmodified; the caller decides how to show it.
		s.sendEvent(Event{Kind: EventError, MessageID: f.MessageID, Err: fmt.Errorf("%s", f.Error)})

	default:
		s.logf("Unknown frame op %q", f.Op)
	}
}

func (s *WSSession) sendEvent(ev Event) {
	select {
	case s.events <- ev:
	case <-s.shutdown:
	}
}

func (s *WSSession) sendState(update SessionStateUpdate) {
	select {
	case s.stateChange <- update:
	default:
		// Drop rather than block; the UI only cares about the latest state.
	}
}

func decodeMessage(w *wireMessage) *Message {
	m := &Message{
		ID:        w.ID,
		ChannelID: w.ChannelID,
		AuthorID:  w.AuthorID,
		Author:    w.Author,
		Content:   w.Content,
		CreatedAt: time.Unix(w.CreatedAt, 0),
		Deleted:   w.Deleted,
		Reactions: ReactionSummary{Reactors: w.Reactions, Totals: w.Totals},
	}
	if w.EditedAt != nil {
		t := time.Unix(*w.EditedAt, 0)
		m.EditedAt = &t
	}
	return m
}

package chatkit

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// localPeer is a simulated remote participant.
type localPeer struct {
	id       string
	nickname string
	online   bool
}

var localPeerNames = []string{"ada", "grace", "linus", "margaret"}

var localPeerLines = []string{
	"anyone seen the deploy finish?",
	"lunch thread or it didn't happen",
	"that last release note was a work of art",
	"rebasing, back in five",
	"who broke the staging gateway again",
	"shipping it",
	"good morning all",
}

var localPeerEmoji = []string{"👍", "🎉", "😂", "🔥", "❤️", "👀", "🚀"}

// LocalSession is an in-process Session used by the --local demo mode and by
// UI tests. It keeps a channel's messages in memory and, when given a tick
// interval, runs simulated peers that post, react, edit, and flap presence.
// It is a fixture for driving the client, not a chat service: no transport,
// no persistence, no delivery guarantees beyond "events come out in order".
type LocalSession struct {
	userID   string
	nickname string
	rng      *rand.Rand
	rngMu    sync.Mutex
	interval time.Duration

	mu        sync.Mutex
	connected bool
	channelID string
	messages  map[string]*Message
	order     []string
	peers     []localPeer

	events      chan Event
	errors      chan error
	stateChange chan SessionStateUpdate

	shutdown chan struct{}
	wg       sync.WaitGroup
}

// NewLocalSession creates a local demo session. interval controls how often
// simulated peers act; zero disables them (useful in tests, where the test
// drives all activity itself). seed makes peer activity reproducible.
func NewLocalSession(nickname string, interval time.Duration, seed int64) *LocalSession {
	s := &LocalSession{
		userID:      "local-" + uuid.NewString()[:8],
		nickname:    nickname,
		rng:         rand.New(rand.NewSource(seed)),
		interval:    interval,
		messages:    make(map[string]*Message),
		events:      make(chan Event, 100),
		errors:      make(chan error, 10),
		stateChange: make(chan SessionStateUpdate, 10),
		shutdown:    make(chan struct{}),
	}
	for i, name := range localPeerNames {
		s.peers = append(s.peers, localPeer{
			id:       fmt.Sprintf("peer-%d", i+1),
			nickname: name,
			online:   true,
		})
	}
	return s
}

// Connect marks the session live and starts the peer loop if enabled.
func (s *LocalSession) Connect() error {
	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		return fmt.Errorf("already connected")
	}
	s.connected = true
	s.mu.Unlock()

	s.sendState(SessionStateUpdate{State: StateTypeConnected})

	if s.interval > 0 {
		s.wg.Add(1)
		go s.peerLoop()
	}
	return nil
}

// Close stops the peer loop and drops the session.
func (s *LocalSession) Close() {
	s.mu.Lock()
	if !s.connected {
		s.mu.Unlock()
		return
	}
	s.connected = false
	s.mu.Unlock()

	close(s.shutdown)
	s.wg.Wait()
}

// IsConnected reports whether Connect has been called.
func (s *LocalSession) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// UserID returns the local user's client identifier.
func (s *LocalSession) UserID() string {
	return s.userID
}

// Join seeds the channel with a little history so the demo has something to
// show immediately.
func (s *LocalSession) Join(channelID string) error {
	s.mu.Lock()
	s.channelID = channelID
	seed := len(s.order) == 0
	s.mu.Unlock()

	if seed {
		for i := 0; i < 3; i++ {
			s.peerPost()
		}
		s.peerReact()
	}

	s.mu.Lock()
	peers := append([]localPeer(nil), s.peers...)
	s.mu.Unlock()
	for _, p := range peers {
		s.sendEvent(Event{Kind: EventPresence, Presence: &PresenceEvent{
			UserID:   p.id,
			Nickname: p.nickname,
			Online:   p.online,
		}})
	}
	return nil
}

// Leave is a no-op locally.
func (s *LocalSession) Leave(channelID string) error {
	return nil
}

// SendMessage posts a message authored by the local user.
func (s *LocalSession) SendMessage(channelID, content string) error {
	s.post(s.userID, s.nickname, channelID, content)
	return nil
}

// EditMessage replaces the content of one of the local user's messages.
func (s *LocalSession) EditMessage(messageID, content string) error {
	s.mu.Lock()
	msg, ok := s.messages[messageID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("no such message %s", messageID)
	}
	if msg.AuthorID != s.userID {
		s.mu.Unlock()
		return fmt.Errorf("cannot edit a message authored by %s", msg.Author)
	}
	now := time.Now()
	msg.Content = content
	msg.EditedAt = &now
	copied := *msg
	s.mu.Unlock()

	s.sendEvent(Event{Kind: EventMessageEdited, Message: &copied})
	return nil
}

// DeleteMessage deletes one of the local user's messages.
func (s *LocalSession) DeleteMessage(messageID string) error {
	s.mu.Lock()
	msg, ok := s.messages[messageID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("no such message %s", messageID)
	}
	if msg.AuthorID != s.userID {
		s.mu.Unlock()
		return fmt.Errorf("cannot delete a message authored by %s", msg.Author)
	}
	msg.Deleted = true
	s.mu.Unlock()

	s.sendEvent(Event{Kind: EventMessageDeleted, MessageID: messageID})
	return nil
}

// AddReaction records the local user's reaction and pushes a fresh snapshot.
func (s *LocalSession) AddReaction(messageID, emoji string) error {
	return s.react(messageID, emoji, s.userID)
}

// DeleteReaction removes every occurrence of the local user's reaction with
// that emoji and pushes a fresh snapshot.
func (s *LocalSession) DeleteReaction(messageID, emoji string) error {
	s.mu.Lock()
	msg, ok := s.messages[messageID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("no such message %s", messageID)
	}
	ids := msg.Reactions.Reactors[emoji]
	kept := ids[:0]
	for _, id := range ids {
		if id != s.userID {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		delete(msg.Reactions.Reactors, emoji)
	} else {
		msg.Reactions.Reactors[emoji] = kept
	}
	snapshot := msg.Reactions.Clone()
	id := msg.ID
	s.mu.Unlock()

	s.sendEvent(Event{Kind: EventReactionsChanged, MessageID: id, Reactions: snapshot})
	return nil
}

// Events returns the channel for pushed events.
func (s *LocalSession) Events() <-chan Event {
	return s.events
}

// Errors returns the channel for session errors.
func (s *LocalSession) Errors() <-chan error {
	return s.errors
}

// StateChanges returns the channel for connectivity updates.
func (s *LocalSession) StateChanges() <-chan SessionStateUpdate {
	return s.stateChange
}

// peerLoop drives simulated activity until shutdown.
func (s *LocalSession) peerLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.shutdown:
			return
		case <-ticker.C:
		}

		switch s.intn(10) {
		case 0, 1, 2:
			s.peerPost()
		case 3, 4, 5, 6:
			s.peerReact()
		case 7:
			s.peerTogglePresence()
		default:
			// quiet tick
		}
	}
}

// intn draws from the shared rng; Join-time seeding and the peer loop both
// use it, so it needs its own lock.
func (s *LocalSession) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func (s *LocalSession) pickPeer() localPeer {
	i := s.intn(len(s.peers))
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peers[i]
}

func (s *LocalSession) peerPost() {
	p := s.pickPeer()
	line := localPeerLines[s.intn(len(localPeerLines))]
	s.post(p.id, p.nickname, s.currentChannel(), line)
}

// peerReact adds a peer reaction to a random message. Peers occasionally
// react twice with the same emoji, so downstream consumers see the
// "unique"-shaped feed (repeated reactor ids) as well as the distinct one.
func (s *LocalSession) peerReact() {
	s.mu.Lock()
	if len(s.order) == 0 {
		s.mu.Unlock()
		return
	}
	id := s.order[s.intn(len(s.order))]
	s.mu.Unlock()

	p := s.pickPeer()
	emoji := localPeerEmoji[s.intn(len(localPeerEmoji))]
	s.react(id, emoji, p.id)
	if s.intn(6) == 0 {
		s.react(id, emoji, p.id)
	}
}

func (s *LocalSession) peerTogglePresence() {
	i := s.intn(len(s.peers))
	s.mu.Lock()
	s.peers[i].online = !s.peers[i].online
	p := s.peers[i]
	s.mu.Unlock()
	s.sendEvent(Event{Kind: EventPresence, Presence: &PresenceEvent{
		UserID:   p.id,
		Nickname: p.nickname,
		Online:   p.online,
	}})
}

func (s *LocalSession) currentChannel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channelID
}

func (s *LocalSession) post(authorID, author, channelID, content string) {
	msg := &Message{
		ID:        uuid.NewString(),
		ChannelID: channelID,
		AuthorID:  authorID,
		Author:    author,
		Content:   content,
		CreatedAt: time.Now(),
		Reactions: ReactionSummary{Reactors: make(map[string][]string)},
	}

	s.mu.Lock()
	s.messages[msg.ID] = msg
	s.order = append(s.order, msg.ID)
	copied := *msg
	s.mu.Unlock()

	s.sendEvent(Event{Kind: EventMessagePosted, Message: &copied})
}

func (s *LocalSession) react(messageID, emoji, reactorID string) error {
	s.mu.Lock()
	msg, ok := s.messages[messageID]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("no such message %s", messageID)
	}
	if msg.Reactions.Reactors == nil {
		msg.Reactions.Reactors = make(map[string][]string)
	}
	msg.Reactions.Reactors[emoji] = append(msg.Reactions.Reactors[emoji], reactorID)
	snapshot := msg.Reactions.Clone()
	s.mu.Unlock()

	s.sendEvent(Event{Kind: EventReactionsChanged, MessageID: messageID, Reactions: snapshot})
	return nil
}

func (s *LocalSession) sendEvent(ev Event) {
	select {
	case s.events <- ev:
	case <-s.shutdown:
	}
}

func (s *LocalSession) sendState(update SessionStateUpdate) {
	select {
	case s.stateChange <- update:
	default:
	}
}

package chatkit

import "time"

// ReactionSummary is the per-message reaction snapshot as delivered by the
// chatkit service: emoji mapped to the client identifiers that reacted with
// it. Depending on the backend the reactor lists may already be deduplicated
// or may contain one entry per reaction event; consumers must tolerate both.
// Totals, when non-nil, carries pre-aggregated per-emoji counts and takes
// precedence over counting the reactor lists.
type ReactionSummary struct {
	Reactors map[string][]string
	Totals   map[string]int
}

// Clone returns a deep copy of the summary. Snapshots handed to the UI are
// cloned so a later update cannot mutate a summary already being rendered.
func (s ReactionSummary) Clone() ReactionSummary {
	out := ReactionSummary{}
	if s.Reactors != nil {
		out.Reactors = make(map[string][]string, len(s.Reactors))
		for emoji, ids := range s.Reactors {
			out.Reactors[emoji] = append([]string(nil), ids...)
		}
	}
	if s.Totals != nil {
		out.Totals = make(map[string]int, len(s.Totals))
		for emoji, n := range s.Totals {
			out.Totals[emoji] = n
		}
	}
	return out
}

// IsEmpty reports whether the summary contains no reactions at all.
func (s ReactionSummary) IsEmpty() bool {
	for _, ids := range s.Reactors {
		if len(ids) > 0 {
			return false
		}
	}
	for _, n := range s.Totals {
		if n > 0 {
			return false
		}
	}
	return true
}

// Message is a chat message as the service delivers it.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	Author    string // display nickname
	Content   string
	CreatedAt time.Time
	EditedAt  *time.Time
	Deleted   bool
	Reactions ReactionSummary
}

// PresenceEvent reports a peer going online or offline in the channel.
type PresenceEvent struct {
	UserID   string
	Nickname string
	Online   bool
}

// EventKind discriminates Event payloads.
type EventKind int

const (
	EventMessagePosted EventKind = iota
	EventMessageEdited
	EventMessageDeleted
	EventReactionsChanged
	EventPresence
	EventError
)

// String returns the event name for debugging
func (k EventKind) String() string {
	switch k {
	case EventMessagePosted:
		return "MessagePosted"
	case EventMessageEdited:
		return "MessageEdited"
	case EventMessageDeleted:
		return "MessageDeleted"
	case EventReactionsChanged:
		return "ReactionsChanged"
	case EventPresence:
		return "Presence"
	case EventError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Event is a single notification pushed by the service. Exactly the fields
// relevant to Kind are populated:
//   - MessagePosted/MessageEdited: Message
//   - MessageDeleted: MessageID
//   - ReactionsChanged: MessageID + Reactions (full snapshot, not a delta)
//   - Presence: Presence
//   - Error: Err (a rejected mutation surfaced asynchronously)
//
// Delivery is at-least-once; duplicate events must be safe to reapply.
type Event struct {
	Kind      EventKind
	Message   *Message
	MessageID string
	Reactions ReactionSummary
	Presence  *PresenceEvent
	Err       error
}

// SessionStateType represents the session connectivity status
type SessionStateType int

const (
	StateTypeConnected SessionStateType = iota
	StateTypeDisconnected
	StateTypeReconnecting
)

// SessionStateUpdate represents a session connectivity change
type SessionStateUpdate struct {
	State   SessionStateType
	Attempt int
	Err     error
}

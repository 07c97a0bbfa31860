package chatkit

// Session defines the interface to a chatkit service session.
// This allows for mocking in tests while the real WSSession implements all
// these methods. All messaging, presence, and persistence semantics live on
// the service side; mutation calls are fire-and-forget and their failures
// come back on Errors() or as EventError, never retried by the caller.
type Session interface {
	// Session management
	Connect() error
	Close()
	IsConnected() bool
	UserID() string

	// Channel membership
	Join(channelID string) error
	Leave(channelID string) error

	// Message mutations
	SendMessage(channelID, content string) error
	EditMessage(messageID, content string) error
	DeleteMessage(messageID string) error

	// Reaction mutations
	AddReaction(messageID, emoji string) error
	DeleteReaction(messageID, emoji string) error

	// Channels for receiving data
	Events() <-chan Event
	Errors() <-chan error
	StateChanges() <-chan SessionStateUpdate
}

package client

import (
	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications for messages that mention the current
// user. It is deliberately quiet about failures: a missing notification
// daemon should never take the client down.
type Notifier struct {
	enabled bool
}

// NewNotifier creates a notifier; pass enabled=false to turn it into a no-op
// (the ui.notifications config flag).
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

// NotifyMention shows a desktop notification for a mention.
func (n *Notifier) NotifyMention(author, preview string) {
	if !n.enabled {
		return
	}
	// Errors intentionally ignored; see type comment.
	_ = beeep.Notify("ReactChat: "+author, preview, "")
}

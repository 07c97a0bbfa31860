package chatkit

import (
	"testing"
	"time"
)

func TestNewWSSessionURLValidation(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"ws scheme", "ws://localhost:7070/chat", false},
		{"wss scheme", "wss://chat.example.com/gateway", false},
		{"http scheme", "http://localhost:7070", true},
		{"no scheme", "localhost:7070", true},
		{"garbage", "://nope", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWSSession(tt.url, "nick")
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWSSession(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestWSSessionWriteWhenDisconnected(t *testing.T) {
	s, err := NewWSSession("ws://localhost:1/chat", "nick")
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SendMessage("general", "hi"); err == nil {
		t.Error("sending without a connection should fail")
	}
	if err := s.AddReaction("m1", "👍"); err == nil {
		t.Error("reacting without a connection should fail")
	}
}

func TestDispatchHello(t *testing.T) {
	s, _ := NewWSSession("ws://localhost/chat", "nick")

	s.dispatch(wireFrame{Op: "hello", UserID: "u-42"})

	if s.UserID() != "u-42" {
		t.Errorf("UserID() = %q, want u-42", s.UserID())
	}
	select {
	case update := <-s.StateChanges():
		if update.State != StateTypeConnected {
			t.Errorf("state = %v, want connected", update.State)
		}
	case <-time.After(time.Second):
		t.Fatal("no state change after hello")
	}
}

func TestDispatchMessageFrame(t *testing.T) {
	s, _ := NewWSSession("ws://localhost/chat", "nick")

	edited := int64(1750000600)
	s.dispatch(wireFrame{Op: "message", Message: &wireMessage{
		ID:        "m1",
		ChannelID: "general",
		AuthorID:  "u-1",
		Author:    "ada",
		Content:   "hello",
		CreatedAt: 1750000000,
		EditedAt:  &edited,
		Reactions: map[string][]string{"👍": {"u-2"}},
		Totals:    map[string]int{"👍": 7},
	}})

	ev := <-s.Events()
	if ev.Kind != EventMessagePosted {
		t.Fatalf("kind = %v, want MessagePosted", ev.Kind)
	}
	msg := ev.Message
	if msg.ID != "m1" || msg.Author != "ada" {
		t.Errorf("decoded message = %+v", msg)
	}
	if msg.CreatedAt.Unix() != 1750000000 {
		t.Errorf("CreatedAt = %v", msg.CreatedAt)
	}
	if msg.EditedAt == nil || msg.EditedAt.Unix() != edited {
		t.Error("EditedAt not decoded")
	}
	if got := msg.Reactions.Reactors["👍"]; len(got) != 1 || got[0] != "u-2" {
		t.Errorf("reactors = %v", got)
	}
	if msg.Reactions.Totals["👍"] != 7 {
		t.Error("pre-aggregated totals should survive decoding")
	}
}

func TestDispatchReactionsFrame(t *testing.T) {
	s, _ := NewWSSession("ws://localhost/chat", "nick")

	s.dispatch(wireFrame{
		Op:        "reactions",
		MessageID: "m1",
		Reactions: map[string][]string{"🎉": {"u-1", "u-2"}},
	})

	ev := <-s.Events()
	if ev.Kind != EventReactionsChanged || ev.MessageID != "m1" {
		t.Fatalf("event = %v %q", ev.Kind, ev.MessageID)
	}
	if len(ev.Reactions.Reactors["🎉"]) != 2 {
		t.Errorf("reactors = %v", ev.Reactions.Reactors)
	}
}

func TestDispatchDeletedAndPresence(t *testing.T) {
	s, _ := NewWSSession("ws://localhost/chat", "nick")

	s.dispatch(wireFrame{Op: "deleted", MessageID: "m9"})
	ev := <-s.Events()
	if ev.Kind != EventMessageDeleted || ev.MessageID != "m9" {
		t.Errorf("event = %v %q", ev.Kind, ev.MessageID)
	}

	s.dispatch(wireFrame{Op: "presence", UserID: "u-3", Nickname: "linus", Online: true})
	ev = <-s.Events()
	if ev.Kind != EventPresence || !ev.Presence.Online || ev.Presence.Nickname != "linus" {
		t.Errorf("presence event = %+v", ev.Presence)
	}
}

func TestDispatchErrorFrame(t *testing.T) {
	s, _ := NewWSSession("ws://localhost/chat", "nick")

	s.dispatch(wireFrame{Op: "error", MessageID: "m1", Error: "not your message"})

	ev := <-s.Events()
	if ev.Kind != EventError {
		t.Fatalf("kind = %v, want Error", ev.Kind)
	}
	if ev.Err == nil || ev.Err.Error() != "not your message" {
		t.Errorf("err = %v", ev.Err)
	}
}

func TestDispatchUnknownOpIsIgnored(t *testing.T) {
	s, _ := NewWSSession("ws://localhost/chat", "nick")

	s.dispatch(wireFrame{Op: "mystery"})

	select {
	case ev := <-s.Events():
		t.Errorf("unknown op produced event %v", ev.Kind)
	case <-time.After(100 * time.Millisecond):
	}
}

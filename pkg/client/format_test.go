package client

import (
	"strings"
	"testing"
	"time"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"just now", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-2 * time.Hour), "2h ago"},
		{"days", now.Add(-72 * time.Hour), "3d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeTime(tt.t); got != tt.want {
				t.Errorf("FormatRelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatAbsoluteTime(t *testing.T) {
	today := time.Now()
	got := FormatAbsoluteTime(today)
	if strings.Contains(got, today.Format("Jan")) {
		t.Errorf("same-day timestamp should omit the date, got %q", got)
	}

	lastMonth := today.AddDate(0, -1, 0)
	got = FormatAbsoluteTime(lastMonth)
	if !strings.Contains(got, lastMonth.Format("Jan")) {
		t.Errorf("other-day timestamp should include the date, got %q", got)
	}
}

func TestPreviewContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		max     int
		want    string
	}{
		{"short", "hello", 10, "hello"},
		{"newlines collapsed", "line one\nline two", 40, "line one line two"},
		{"truncated", "abcdefghij", 5, "abcde…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PreviewContent(tt.content, tt.max); got != tt.want {
				t.Errorf("PreviewContent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMentionsNickname(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		nickname string
		want     bool
	}{
		{"at mention", "hey @alice, look at this", "alice", true},
		{"bare mention", "alice should see this", "alice", true},
		{"case insensitive", "ALICE!", "alice", true},
		{"substring is not a mention", "malice everywhere", "alice", false},
		{"prefix is not a mention", "alices keyboard", "alice", false},
		{"empty nickname", "anything", "", false},
		{"no mention", "nothing relevant", "alice", false},
		{"end of content", "ping alice", "alice", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MentionsNickname(tt.content, tt.nickname); got != tt.want {
				t.Errorf("MentionsNickname(%q, %q) = %v, want %v", tt.content, tt.nickname, got, tt.want)
			}
		})
	}
}

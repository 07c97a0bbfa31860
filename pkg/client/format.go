// ABOUTME: Formatting utilities for client UIs
// ABOUTME: Shared functions for displaying timestamps, previews, mentions
package client

import (
	"fmt"
	"strings"
	"time"
)

// FormatRelativeTime formats a timestamp relative to now
// Returns strings like "just now", "5m ago", "2h ago", "3d ago"
func FormatRelativeTime(t time.Time) string {
	now := time.Now()
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		return fmt.Sprintf("%dm ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		return fmt.Sprintf("%dh ago", hours)
	}
	days := int(diff.Hours() / 24)
	return fmt.Sprintf("%dd ago", days)
}

// FormatAbsoluteTime formats a timestamp as wall-clock time, with the date
// when the message is from another day.
func FormatAbsoluteTime(t time.Time) string {
	now := time.Now()
	if t.Year() == now.Year() && t.YearDay() == now.YearDay() {
		return t.Format("15:04")
	}
	return t.Format("Jan 2 15:04")
}

// PreviewContent collapses a message body to a single display line
func PreviewContent(content string, maxChars int) string {
	preview := strings.ReplaceAll(content, "\n", " ")
	if len(preview) > maxChars {
		return preview[:maxChars] + "…"
	}
	return preview
}

// MentionsNickname reports whether content mentions nickname as a whole word,
// with or without a leading @.
func MentionsNickname(content, nickname string) bool {
	if nickname == "" {
		return false
	}
	lower := strings.ToLower(content)
	nick := strings.ToLower(nickname)

	for _, candidate := range []string{"@" + nick, nick} {
		idx := 0
		for {
			i := strings.Index(lower[idx:], candidate)
			if i < 0 {
				break
			}
			start := idx + i
			end := start + len(candidate)
			beforeOK := start == 0 || !isWordByte(lower[start-1])
			afterOK := end == len(lower) || !isWordByte(lower[end])
			if beforeOK && afterOK {
				return true
			}
			idx = start + 1
		}
	}
	return false
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

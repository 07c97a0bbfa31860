// Package reactions turns raw chatkit reaction snapshots into display-ready
// structures and classifies user taps on them. Everything here is a pure
// projection of the latest snapshot: nothing is accumulated across updates,
// so replaying a duplicate snapshot always yields the same output.
package reactions

import (
	"sort"

	"github.com/aeolun/reactchat/pkg/chatkit"
)

// SummaryLimit is the maximum number of emoji groups shown in the inline
// summary row under a message. The full list is always reachable separately.
const SummaryLimit = 5

// Item is one author's reactions with one emoji. (Author, Emoji) is the
// identity key: the same pair never appears twice in a list.
type Item struct {
	Author string
	Emoji  string
	Count  int
}

// SummaryEntry is one emoji group in the inline summary row.
type SummaryEntry struct {
	Emoji string
	Count int
}

// BuildFullList expands a raw snapshot into per-author items, sorted
// ascending by author then emoji. A reactor id repeated within one emoji's
// list counts as multiple reactions; a feed that deduplicates upstream
// simply always produces count 1. Both shapes flow through unchanged.
func BuildFullList(raw chatkit.ReactionSummary) []Item {
	type pair struct {
		author string
		emoji  string
	}

	counts := make(map[pair]int)
	for emoji, ids := range raw.Reactors {
		for _, id := range ids {
			counts[pair{author: id, emoji: emoji}]++
		}
	}

	items := make([]Item, 0, len(counts))
	for p, n := range counts {
		items = append(items, Item{Author: p.author, Emoji: p.emoji, Count: n})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Author != items[j].Author {
			return items[i].Author < items[j].Author
		}
		return items[i].Emoji < items[j].Emoji
	})

	return items
}

// totals merges per-emoji counts from the snapshot: reactor-list lengths,
// overridden by the service's pre-aggregated totals where supplied. Emoji
// that end up with no positive count contribute nothing.
func totals(raw chatkit.ReactionSummary) map[string]int {
	merged := make(map[string]int, len(raw.Reactors))
	for emoji, ids := range raw.Reactors {
		if len(ids) > 0 {
			merged[emoji] = len(ids)
		}
	}
	for emoji, n := range raw.Totals {
		if n > 0 {
			merged[emoji] = n
		} else {
			delete(merged, emoji)
		}
	}
	return merged
}

// BuildSummaryRow produces the capped inline row: at most SummaryLimit emoji
// groups, the lexicographically smallest emoji win, sorted ascending by
// emoji, each carrying its total reactor count.
func BuildSummaryRow(raw chatkit.ReactionSummary) []SummaryEntry {
	merged := totals(raw)

	entries := make([]SummaryEntry, 0, len(merged))
	for emoji, n := range merged {
		entries = append(entries, SummaryEntry{Emoji: emoji, Count: n})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Emoji < entries[j].Emoji
	})

	if len(entries) > SummaryLimit {
		entries = entries[:SummaryLimit]
	}
	return entries
}

// Overflow returns how many emoji groups the inline row omits for this
// snapshot. The rendering layer uses it for a "+N more" hint.
func Overflow(raw chatkit.ReactionSummary) int {
	n := len(totals(raw)) - SummaryLimit
	if n < 0 {
		return 0
	}
	return n
}

// IntentKind distinguishes the two outcomes of tapping an emoji group.
type IntentKind int

const (
	// AddReaction means the current user has not reacted with this emoji yet.
	AddReaction IntentKind = iota
	// RemoveOwnReaction means the current user already has; tapping removes it.
	RemoveOwnReaction
)

// String returns the intent name for debugging
func (k IntentKind) String() string {
	switch k {
	case AddReaction:
		return "AddReaction"
	case RemoveOwnReaction:
		return "RemoveOwnReaction"
	default:
		return "Unknown"
	}
}

// Intent is the classified outcome of a tap. Applying it (the actual
// chatkit mutation call) is the caller's job; failures surface as-is.
type Intent struct {
	Kind  IntentKind
	Emoji string
}

// ClassifyTap decides whether tapping emoji should add a reaction or remove
// the current user's existing one, by membership test against that emoji's
// reactor list.
func ClassifyTap(raw chatkit.ReactionSummary, emoji, currentUserID string) Intent {
	for _, id := range raw.Reactors[emoji] {
		if id == currentUserID {
			return Intent{Kind: RemoveOwnReaction, Emoji: emoji}
		}
	}
	return Intent{Kind: AddReaction, Emoji: emoji}
}

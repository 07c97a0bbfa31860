package modal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/reactchat/pkg/client/reactions"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestModalStackPushPop(t *testing.T) {
	var stack ModalStack

	if !stack.IsEmpty() || stack.TopType() != ModalNone {
		t.Error("fresh stack should be empty with type None")
	}

	help := NewHelpModal(nil)
	stack.Push(help)
	if stack.IsEmpty() || stack.TopType() != ModalHelp {
		t.Error("pushed modal should be on top")
	}

	picker := NewReactionPickerModal([]string{"👍"}, nil, nil)
	stack.Push(picker)
	if stack.TopType() != ModalReactionPicker {
		t.Error("later push should shadow earlier modal")
	}

	if popped := stack.Pop(); popped != Modal(picker) {
		t.Error("Pop should return the top modal")
	}
	if stack.TopType() != ModalHelp {
		t.Error("Pop should reveal the modal underneath")
	}
}

func TestModalStackHandleKeyClosesOnNil(t *testing.T) {
	var stack ModalStack
	stack.Push(NewHelpModal(nil))

	handled, _ := stack.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if !handled {
		t.Error("help modal should consume esc")
	}
	if !stack.IsEmpty() {
		t.Error("esc should close the help modal")
	}
}

func TestModalStackHandleKeyEmpty(t *testing.T) {
	var stack ModalStack
	handled, _ := stack.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if handled {
		t.Error("empty stack should not consume keys")
	}
}

func TestComposeModalTyping(t *testing.T) {
	var sent string
	m := NewComposeModal(ComposeModeNew, "",
		func(content string) tea.Cmd { sent = content; return nil },
		func() tea.Cmd { return nil })

	for _, r := range "héllo" {
		m.HandleKey(keyRune(r))
	}
	m.HandleKey(tea.KeyMsg{Type: tea.KeySpace})
	m.HandleKey(keyRune('x'))
	// Backspace drops the rune, not a byte
	m.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	m.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})

	_, closed, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlD})
	if closed != nil {
		t.Error("sending should close the modal")
	}
	if sent != "héllo" {
		t.Errorf("sent = %q, want %q", sent, "héllo")
	}
}

func TestComposeModalRefusesEmptySend(t *testing.T) {
	called := false
	m := NewComposeModal(ComposeModeNew, "",
		func(content string) tea.Cmd { called = true; return nil },
		nil)

	_, kept, _ := m.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlD})
	if kept == nil {
		t.Error("empty compose should stay open")
	}
	if called {
		t.Error("empty compose must not send")
	}
}

func TestDeleteConfirmModal(t *testing.T) {
	var confirmed string
	canceled := false
	m := NewDeleteConfirmModal("m-7",
		func(id string) tea.Cmd { confirmed = id; return nil },
		func() tea.Cmd { canceled = true; return nil })

	_, closed, _ := m.HandleKey(keyRune('y'))
	if closed != nil || confirmed != "m-7" {
		t.Errorf("confirm: closed=%v confirmed=%q", closed, confirmed)
	}

	m = NewDeleteConfirmModal("m-8",
		func(id string) tea.Cmd { confirmed = id; return nil },
		func() tea.Cmd { canceled = true; return nil })
	_, closed, _ = m.HandleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if closed != nil || !canceled {
		t.Error("esc should cancel and close")
	}
	if confirmed != "m-7" {
		t.Error("cancel must not confirm")
	}
}

func TestReactionPickerQuickPick(t *testing.T) {
	palette := []string{"👍", "🎉", "😂"}
	var picked string
	m := NewReactionPickerModal(palette,
		func(emoji string) tea.Cmd { picked = emoji; return nil },
		nil)

	_, closed, _ := m.HandleKey(keyRune('2'))
	if closed != nil {
		t.Error("quick pick should close the picker")
	}
	if picked != "🎉" {
		t.Errorf("picked = %q, want 🎉", picked)
	}

	// Out-of-range digit is consumed but does nothing
	m = NewReactionPickerModal(palette, func(emoji string) tea.Cmd { picked = emoji; return nil }, nil)
	picked = ""
	_, kept, _ := m.HandleKey(keyRune('9'))
	if kept == nil || picked != "" {
		t.Error("digit past the palette should be a no-op")
	}
}

func TestReactionPickerCursorBounds(t *testing.T) {
	palette := []string{"👍", "🎉"}
	var picked string
	m := NewReactionPickerModal(palette,
		func(emoji string) tea.Cmd { picked = emoji; return nil },
		nil)

	m.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}) // already at 0
	m.HandleKey(tea.KeyMsg{Type: tea.KeyRight})
	m.HandleKey(tea.KeyMsg{Type: tea.KeyRight}) // clamped at the end
	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if picked != "🎉" {
		t.Errorf("picked = %q, want 🎉", picked)
	}
}

func TestReactionMenuRemoveRequiresOwnReaction(t *testing.T) {
	removed := false
	m := NewReactionMenuModal("👍", 3, false,
		nil, nil,
		func(emoji string) tea.Cmd { removed = true; return nil },
		nil)

	_, kept, _ := m.HandleKey(keyRune('r'))
	if kept == nil {
		t.Error("remove without own reaction should keep the menu open")
	}
	if removed {
		t.Error("remove must not fire when the user has not reacted")
	}
}

func TestReactionMenuTapToggles(t *testing.T) {
	added, removed := false, false
	onAdd := func(emoji string) tea.Cmd { added = true; return nil }
	onRemove := func(emoji string) tea.Cmd { removed = true; return nil }

	m := NewReactionMenuModal("👍", 1, false, nil, onAdd, onRemove, nil)
	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !added || removed {
		t.Error("tapping when not reacted should add")
	}

	added, removed = false, false
	m = NewReactionMenuModal("👍", 2, true, nil, onAdd, onRemove, nil)
	m.HandleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if added || !removed {
		t.Error("tapping when already reacted should remove")
	}
}

func TestReactionListModalRender(t *testing.T) {
	items := []reactions.Item{
		{Author: "ada", Emoji: "👍", Count: 1},
		{Author: "grace", Emoji: "🎉", Count: 3},
	}
	m := NewReactionListModal(items)

	out := m.Render(80, 24)
	if !strings.Contains(out, "ada") || !strings.Contains(out, "grace") {
		t.Error("full list should render every author")
	}
	if !strings.Contains(out, "×3") {
		t.Error("collapsed duplicates should show their count")
	}
	if strings.Contains(out, "×1") {
		t.Error("count of one should not render a multiplier")
	}
}

func TestReactionListModalEmpty(t *testing.T) {
	m := NewReactionListModal(nil)
	out := m.Render(80, 24)
	if !strings.Contains(out, "No reactions yet") {
		t.Error("empty list should render the placeholder")
	}
}

func TestReactionListModalScroll(t *testing.T) {
	items := make([]reactions.Item, 20)
	for i := range items {
		items[i] = reactions.Item{Author: "user", Emoji: "👍", Count: 1}
	}
	m := NewReactionListModal(items)

	for i := 0; i < 30; i++ {
		m.HandleKey(keyRune('j'))
	}
	if m.offset != len(items)-reactionListPageSize {
		t.Errorf("offset = %d, want %d", m.offset, len(items)-reactionListPageSize)
	}

	for i := 0; i < 30; i++ {
		m.HandleKey(keyRune('k'))
	}
	if m.offset != 0 {
		t.Errorf("offset after scrolling up = %d, want 0", m.offset)
	}
}

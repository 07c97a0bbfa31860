package modal

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ModalType identifies a modal for command availability checks
type ModalType int

const (
	ModalNone ModalType = iota
	ModalCompose
	ModalHelp
	ModalDeleteConfirm
	ModalReactionPicker
	ModalReactionMenu
	ModalReactionList
)

// String returns the modal name for debugging
func (m ModalType) String() string {
	switch m {
	case ModalNone:
		return "None"
	case ModalCompose:
		return "Compose"
	case ModalHelp:
		return "Help"
	case ModalDeleteConfirm:
		return "DeleteConfirm"
	case ModalReactionPicker:
		return "ReactionPicker"
	case ModalReactionMenu:
		return "ReactionMenu"
	case ModalReactionList:
		return "ReactionList"
	default:
		return "Unknown"
	}
}

// Modal is an overlay that captures keyboard input while open
type Modal interface {
	// Type returns the modal type
	Type() ModalType

	// HandleKey processes a key press. It returns whether the key was
	// consumed, the modal to keep on the stack (nil closes this modal),
	// and an optional command.
	HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd)

	// Render draws the modal over a width x height area
	Render(width, height int) string

	// IsBlockingInput reports whether keys must not fall through to the
	// view underneath
	IsBlockingInput() bool
}

// ModalStack manages the stack of open modals; the top modal gets input
type ModalStack struct {
	stack []Modal
}

// Push opens a modal on top of the stack
func (s *ModalStack) Push(m Modal) {
	s.stack = append(s.stack, m)
}

// Pop removes and returns the top modal, nil if empty
func (s *ModalStack) Pop() Modal {
	if len(s.stack) == 0 {
		return nil
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return top
}

// Top returns the top modal without removing it, nil if empty
func (s *ModalStack) Top() Modal {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// TopType returns the type of the top modal, ModalNone if empty
func (s *ModalStack) TopType() ModalType {
	top := s.Top()
	if top == nil {
		return ModalNone
	}
	return top.Type()
}

// IsEmpty reports whether no modal is open
func (s *ModalStack) IsEmpty() bool {
	return len(s.stack) == 0
}

// HandleKey routes a key press to the top modal. A nil replacement modal
// closes the top entry. Returns whether the key was consumed.
func (s *ModalStack) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	top := s.Top()
	if top == nil {
		return false, nil
	}

	handled, replacement, cmd := top.HandleKey(msg)
	if replacement == nil {
		s.Pop()
	} else {
		s.stack[len(s.stack)-1] = replacement
	}
	return handled, cmd
}

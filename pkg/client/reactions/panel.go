package reactions

// PanelState is the reaction UI state of a single message row.
type PanelState int

const (
	PanelIdle PanelState = iota
	PanelPickerOpen
	PanelMenuOpen
	PanelFullListOpen
)

// String returns the state name for debugging
func (s PanelState) String() string {
	switch s {
	case PanelIdle:
		return "Idle"
	case PanelPickerOpen:
		return "PickerOpen"
	case PanelMenuOpen:
		return "MenuOpen"
	case PanelFullListOpen:
		return "FullListOpen"
	default:
		return "Unknown"
	}
}

// Panel tracks the transient reaction UI state for one message row: whether
// the emoji picker, the per-group menu, or the full-list sheet is open.
// Each message row owns its own Panel; there is no shared global state.
// All overlays open only from Idle and every path leads back to Idle.
type Panel struct {
	state     PanelState
	menuEmoji string
}

// State returns the current state.
func (p *Panel) State() PanelState {
	return p.state
}

// MenuEmoji returns the emoji the open menu refers to, empty outside MenuOpen.
func (p *Panel) MenuEmoji() string {
	if p.state != PanelMenuOpen {
		return ""
	}
	return p.menuEmoji
}

// OpenPicker opens the emoji picker. Reports whether the transition applied.
func (p *Panel) OpenPicker() bool {
	if p.state != PanelIdle {
		return false
	}
	p.state = PanelPickerOpen
	return true
}

// OpenMenu opens the menu for an existing emoji group.
func (p *Panel) OpenMenu(emoji string) bool {
	if p.state != PanelIdle || emoji == "" {
		return false
	}
	p.state = PanelMenuOpen
	p.menuEmoji = emoji
	return true
}

// OpenFullList opens the show-all sheet.
func (p *Panel) OpenFullList() bool {
	if p.state != PanelIdle {
		return false
	}
	p.state = PanelFullListOpen
	return true
}

// ShowAll moves from the per-group menu to the full-list sheet.
func (p *Panel) ShowAll() bool {
	if p.state != PanelMenuOpen {
		return false
	}
	p.state = PanelFullListOpen
	p.menuEmoji = ""
	return true
}

// Dismiss closes whatever is open. Safe to call from any state.
func (p *Panel) Dismiss() {
	p.state = PanelIdle
	p.menuEmoji = ""
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hopbunny/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a discrete action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "enter", "up", "w":
		return core.ActionStart, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "b", "esc":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MapDirection translates a steering key. ok is false for other keys.
// Down stops steering at once.
func (km *KeyMapper) MapDirection(msg tea.KeyMsg) (dir core.Direction, ok bool) {
	switch msg.String() {
	case "left", "a", "h":
		return core.DirLeft, true
	case "right", "d", "l":
		return core.DirRight, true
	case "down", "s", "j":
		return core.DirNone, true
	}
	return core.DirNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// heldDirection turns key presses into a held steering direction.
// Terminals report presses and auto-repeats but no releases, so a press
// steers for a fixed number of ticks and each repeat extends it.
type heldDirection struct {
	dir   core.Direction
	left  int
	ticks int
}

// newHeldDirection holds each press for about half a second.
func newHeldDirection(tickRate int) heldDirection {
	return heldDirection{ticks: max(1, tickRate/2)}
}

// Press starts or refreshes steering in dir. DirNone releases at once.
func (h *heldDirection) Press(dir core.Direction) {
	h.dir = dir.Normalize()
	if h.dir == core.DirNone {
		h.left = 0
		return
	}
	h.left = h.ticks
}

// Next returns the direction for the coming tick and ages the hold.
func (h *heldDirection) Next() core.Direction {
	if h.left <= 0 {
		return core.DirNone
	}
	h.left--
	return h.dir
}

package core

// Action represents a discrete game signal, abstracted from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionStart          // Space, Enter - leave the idle screen
	ActionRestart        // R - reset the session back to idle
	ActionPause          // P - pause/unpause while running
	ActionBack           // B, Esc - leave the game (menu)
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction is the horizontal steering input: -1 left, 0 none, 1 right.
type Direction int

const (
	DirLeft  Direction = -1
	DirNone  Direction = 0
	DirRight Direction = 1
)

// Normalize folds any value into {-1, 0, 1}.
func (d Direction) Normalize() Direction {
	switch {
	case d < 0:
		return DirLeft
	case d > 0:
		return DirRight
	default:
		return DirNone
	}
}

// InputFrame is the input for a single simulation tick: the steering
// direction held during the tick plus any one-shot actions.
type InputFrame struct {
	Dir     Direction
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// ClearActions resets the one-shot actions. Dir is left alone since
// steering is a held state owned by the input adapter.
func (f *InputFrame) ClearActions() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

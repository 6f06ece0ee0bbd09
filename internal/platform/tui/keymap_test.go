package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hopbunny/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name       string
		msg        tea.KeyMsg
		wantAction core.Action
		wantQuit   bool
	}{
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"space starts", tea.KeyMsg{Type: tea.KeySpace}, core.ActionStart, false},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, false},
		{"up starts", tea.KeyMsg{Type: tea.KeyUp}, core.ActionStart, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"b goes back", runeKey("b"), core.ActionBack, false},
		{"unknown key", runeKey("z"), core.ActionNone, false},
		{"steering is not an action", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, isQuit := km.MapKey(tt.msg)
			if action != tt.wantAction || isQuit != tt.wantQuit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)",
					tt.msg.String(), action, isQuit, tt.wantAction, tt.wantQuit)
			}
		})
	}
}

func TestMapDirection(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		want   core.Direction
		wantOK bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.DirLeft, true},
		{runeKey("a"), core.DirLeft, true},
		{runeKey("h"), core.DirLeft, true},
		{tea.KeyMsg{Type: tea.KeyRight}, core.DirRight, true},
		{runeKey("d"), core.DirRight, true},
		{runeKey("l"), core.DirRight, true},
		{tea.KeyMsg{Type: tea.KeyDown}, core.DirNone, true},
		{runeKey("s"), core.DirNone, true},
		{runeKey("p"), core.DirNone, false},
		{tea.KeyMsg{Type: tea.KeySpace}, core.DirNone, false},
	}

	for _, tt := range tests {
		dir, ok := km.MapDirection(tt.msg)
		if dir != tt.want || ok != tt.wantOK {
			t.Errorf("MapDirection(%q) = (%d, %v), want (%d, %v)", tt.msg.String(), dir, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %d, want %d", tt.msg.String(), got, tt.want)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("r"), &frame) {
		t.Fatal("r should not quit")
	}
	if !frame.Has(core.ActionRestart) {
		t.Error("frame should carry Restart")
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should quit")
	}
}

func TestHeldDirectionDecays(t *testing.T) {
	h := newHeldDirection(4) // holds for 2 ticks

	if got := h.Next(); got != core.DirNone {
		t.Fatalf("idle hold = %d, want none", got)
	}

	h.Press(core.DirRight)
	want := []core.Direction{core.DirRight, core.DirRight, core.DirNone, core.DirNone}
	for i, w := range want {
		if got := h.Next(); got != w {
			t.Errorf("tick %d: got %d, want %d", i, got, w)
		}
	}
}

func TestHeldDirectionRepeatExtends(t *testing.T) {
	h := newHeldDirection(4)

	h.Press(core.DirLeft)
	h.Next()
	h.Press(core.DirLeft)
	if got := h.Next(); got != core.DirLeft {
		t.Fatalf("after repeat got %d, want left", got)
	}
	if got := h.Next(); got != core.DirLeft {
		t.Fatalf("repeat should refresh the hold, got %d", got)
	}
}

func TestHeldDirectionReleaseAndSwitch(t *testing.T) {
	h := newHeldDirection(60)

	h.Press(core.DirLeft)
	h.Press(core.DirRight)
	if got := h.Next(); got != core.DirRight {
		t.Errorf("switch: got %d, want right", got)
	}

	h.Press(core.DirNone)
	if got := h.Next(); got != core.DirNone {
		t.Errorf("release: got %d, want none", got)
	}
}

func TestHeldDirectionMinimumHold(t *testing.T) {
	for _, rate := range []int{0, 1} {
		h := newHeldDirection(rate)
		h.Press(core.DirRight)
		if got := h.Next(); got != core.DirRight {
			t.Errorf("rate %d: got %d, want one tick of right", rate, got)
		}
	}
}

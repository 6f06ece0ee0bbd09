package hop

import (
	"testing"

	"github.com/vovakirdan/hopbunny/internal/core"
)

func TestPlatformPoolReusesSlots(t *testing.T) {
	pp := NewPlatformPool(4)

	a := pp.Acquire(Platform{ID: 1})
	b := pp.Acquire(Platform{ID: 2})
	c := pp.Acquire(Platform{ID: 3})
	if a != 0 || b != 1 || c != 2 {
		t.Fatalf("indices = %d,%d,%d, want 0,1,2", a, b, c)
	}
	if pp.Len() != 3 {
		t.Errorf("Len() = %d, want 3", pp.Len())
	}

	pp.Release(b)
	pp.Release(b) // Double release is a no-op
	if pp.Len() != 2 {
		t.Errorf("Len() after release = %d, want 2", pp.Len())
	}
	if pp.Slots()[b].Alive {
		t.Error("released slot should be dead")
	}

	d := pp.Acquire(Platform{ID: 4, Pos: core.Vec{X: 7}})
	if d != b {
		t.Errorf("Acquire reused index %d, want %d", d, b)
	}
	if pp.Cap() != 3 {
		t.Errorf("Cap() = %d, want 3", pp.Cap())
	}
	if got := pp.Slots()[d]; !got.Alive || got.ID != 4 || got.Pos.X != 7 {
		t.Errorf("reused slot = %+v", got)
	}
}

func TestPlatformPoolReset(t *testing.T) {
	pp := NewPlatformPool(2)
	pp.Acquire(Platform{ID: 1})
	pp.Release(pp.Acquire(Platform{ID: 2}))

	pp.Reset()

	if pp.Len() != 0 || pp.Cap() != 0 {
		t.Errorf("after Reset Len=%d Cap=%d, want 0,0", pp.Len(), pp.Cap())
	}
	if idx := pp.Acquire(Platform{ID: 3}); idx != 0 {
		t.Errorf("first Acquire after Reset = %d, want 0", idx)
	}
}

func TestPlatformPoolReleaseOutOfRange(t *testing.T) {
	pp := NewPlatformPool(0)
	pp.Release(-1)
	pp.Release(5)
	if pp.Len() != 0 {
		t.Errorf("Len() = %d, want 0", pp.Len())
	}
}

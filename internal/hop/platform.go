package hop

import "github.com/vovakirdan/hopbunny/internal/core"

// Kind is the platform type. It decides what a landing does.
type Kind int

const (
	KindNormal   Kind = iota // Bounce with the normal jump velocity
	KindMoving               // Like normal, but slides horizontally
	KindBreaking             // Catches the bunny once and crumbles, no bounce
	KindSpring               // Bounce with the spring velocity
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindMoving:
		return "moving"
	case KindBreaking:
		return "breaking"
	case KindSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Bounces reports whether landing on this kind launches the bunny upward.
// Only bouncing platforms count toward the reachability chain.
func (k Kind) Bounces() bool {
	return k != KindBreaking
}

// Platform is a one-way ledge. Pos.X is the left edge, Pos.Y the top surface.
type Platform struct {
	ID    uint64
	Pos   core.Vec
	W     float64
	Kind  Kind
	VX    float64 // Horizontal speed for moving platforms
	Alive bool
}

// Center returns the x-coordinate of the platform center.
func (p Platform) Center() float64 {
	return p.Pos.X + p.W/2
}

// PlatformPool is an arena of platform slots. Released slots are reused
// by later spawns so a long session does not grow the backing slice.
type PlatformPool struct {
	slots []Platform
	free  []int
	alive int
}

// NewPlatformPool creates a pool with room for capacity platforms.
func NewPlatformPool(capacity int) *PlatformPool {
	if capacity < 0 {
		capacity = 0
	}
	return &PlatformPool{
		slots: make([]Platform, 0, capacity),
		free:  make([]int, 0, capacity),
	}
}

// Acquire stores p in a free slot (or a new one) and returns its index.
func (pp *PlatformPool) Acquire(p Platform) int {
	p.Alive = true
	pp.alive++
	if n := len(pp.free); n > 0 {
		idx := pp.free[n-1]
		pp.free = pp.free[:n-1]
		pp.slots[idx] = p
		return idx
	}
	pp.slots = append(pp.slots, p)
	return len(pp.slots) - 1
}

// Release marks slot idx dead and makes it available for reuse.
// Releasing a dead or unknown slot is a no-op.
func (pp *PlatformPool) Release(idx int) {
	if idx < 0 || idx >= len(pp.slots) || !pp.slots[idx].Alive {
		return
	}
	pp.slots[idx].Alive = false
	pp.free = append(pp.free, idx)
	pp.alive--
}

// Slots returns the backing slots, dead ones included. Callers must skip
// entries whose Alive flag is false and must not retain the slice.
func (pp *PlatformPool) Slots() []Platform {
	return pp.slots
}

// At returns a pointer to slot idx for in-place updates.
func (pp *PlatformPool) At(idx int) *Platform {
	return &pp.slots[idx]
}

// Len returns the number of live platforms.
func (pp *PlatformPool) Len() int {
	return pp.alive
}

// Cap returns the number of slots, live or free.
func (pp *PlatformPool) Cap() int {
	return len(pp.slots)
}

// Reset drops every platform while keeping the allocated storage.
func (pp *PlatformPool) Reset() {
	pp.slots = pp.slots[:0]
	pp.free = pp.free[:0]
	pp.alive = 0
}

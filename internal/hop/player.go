package hop

import "github.com/vovakirdan/hopbunny/internal/core"

// Player is the bunny. Pos.X is the left edge of the hitbox and Pos.Y the
// feet line, so a landing snaps Pos.Y to the platform top.
type Player struct {
	Pos     core.Vec
	Vel     core.Vec
	Dir     core.Direction
	Falling bool
	W, H    float64
}

// Bounds returns the hitbox in world coordinates.
func (p Player) Bounds() core.AABB {
	return core.AABB{X: p.Pos.X, Y: p.Pos.Y - p.H, W: p.W, H: p.H}
}

// Feet returns the y-coordinate of the bottom edge.
func (p Player) Feet() float64 {
	return p.Pos.Y
}

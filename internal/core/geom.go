// Package core provides fundamental types and utilities shared by the
// simulation and its front ends. It has no UI dependencies (no Bubble Tea,
// no Ebiten) so game logic stays pure and testable.
package core

import "math"

// Vec is a 2D vector in world units. Y grows downward.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// AABB is an axis-aligned box in world units, (X, Y) being the top-left corner.
type AABB struct {
	X, Y float64
	W, H float64
}

// Right returns the x-coordinate of the right edge.
func (b AABB) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b AABB) Bottom() float64 {
	return b.Y + b.H
}

// OverlapsX reports whether the horizontal extents of b and o overlap.
// Touching edges do not count as overlap.
func (b AABB) OverlapsX(o AABB) bool {
	return b.X < o.Right() && o.X < b.Right()
}

// Intersects reports whether b and o overlap on both axes.
func (b AABB) Intersects(o AABB) bool {
	if !b.OverlapsX(o) {
		return false
	}
	return b.Y < o.Bottom() && o.Y < b.Bottom()
}

// Rect is an integer rectangle in screen cells, used for drawing.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// Wrap maps x into [0, width). Width must be positive.
func Wrap(x, width float64) float64 {
	x = math.Mod(x, width)
	if x < 0 {
		x += width
	}
	return x
}

package hop

import (
	"math"

	"github.com/vovakirdan/hopbunny/internal/config"
	"github.com/vovakirdan/hopbunny/internal/core"
)

// landingEpsilon absorbs float drift when the feet rest exactly on a top.
const landingEpsilon = 1e-9

// Integrate advances the player by dt ticks using semi-implicit Euler:
// velocity is updated first and the new velocity moves the position.
// Horizontal velocity follows the steering direction with no inertia.
func Integrate(p Player, dt float64, cfg config.PhysicsConfig) Player {
	p.Vel.X = float64(p.Dir.Normalize()) * cfg.MoveSpeed
	p.Vel.Y += cfg.Gravity * dt
	if cfg.MaxFallSpeed > 0 && p.Vel.Y > cfg.MaxFallSpeed {
		p.Vel.Y = cfg.MaxFallSpeed
	}
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	p.Falling = p.Vel.Y > 0
	return p
}

// ApplyEdges keeps the player inside a world worldW cells wide, either by
// wrapping around or by clamping against the walls.
func ApplyEdges(p Player, worldW float64, mode config.EdgeMode) Player {
	if worldW <= 0 {
		return p
	}
	switch mode {
	case config.EdgeClamp:
		maxX := math.Max(0, worldW-p.W)
		p.Pos.X = core.ClampF(p.Pos.X, 0, maxX)
	default:
		p.Pos.X = core.Wrap(p.Pos.X, worldW)
	}
	return p
}

// ResolveLanding checks the move from prev to next against the platforms
// and returns the resolved player plus the index of the platform landed on,
// or -1. Platforms are one-way: only a falling player whose feet cross a
// top surface while overlapping it horizontally lands. Side and underside
// contacts pass through.
//
// When several tops are crossed in one step the first one crossed wins,
// ties going to the lower x and then the lower ID, so the result does not
// depend on slice order.
func ResolveLanding(prev, next Player, platforms []Platform, cfg config.PhysicsConfig, worldW float64) (Player, int) {
	if next.Vel.Y <= 0 {
		return next, -1
	}

	prevFeet, nextFeet := prev.Feet(), next.Feet()
	best := -1
	bestDist := math.Inf(1)
	for i := range platforms {
		pl := &platforms[i]
		if !pl.Alive {
			continue
		}
		top := pl.Pos.Y
		if prevFeet > top+landingEpsilon || nextFeet < top {
			continue
		}
		if !overlapsPlatform(next, pl, worldW, cfg.EdgeMode) {
			continue
		}
		dist := math.Max(0, top-prevFeet)
		if best < 0 || dist < bestDist || (dist == bestDist && lessPlatform(pl, &platforms[best])) {
			best = i
			bestDist = dist
		}
	}
	if best < 0 {
		return next, -1
	}

	landed := platforms[best]
	next.Pos.Y = landed.Pos.Y
	switch landed.Kind {
	case KindSpring:
		next.Vel.Y = -cfg.SpringVelocity
	case KindBreaking:
		next.Vel.Y = 0
	default:
		next.Vel.Y = -cfg.JumpVelocity
	}
	next.Falling = false
	return next, best
}

func lessPlatform(a, b *Platform) bool {
	if a.Pos.X != b.Pos.X {
		return a.Pos.X < b.Pos.X
	}
	return a.ID < b.ID
}

// overlapsPlatform tests horizontal overlap. In wrap mode a player hanging
// over one edge also overlaps platforms at the opposite edge.
func overlapsPlatform(p Player, pl *Platform, worldW float64, mode config.EdgeMode) bool {
	body := core.AABB{X: p.Pos.X, W: p.W}
	ledge := core.AABB{X: pl.Pos.X, W: pl.W}
	if body.OverlapsX(ledge) {
		return true
	}
	if mode == config.EdgeClamp || worldW <= 0 {
		return false
	}
	body.X -= worldW
	if body.OverlapsX(ledge) {
		return true
	}
	body.X += 2 * worldW
	return body.OverlapsX(ledge)
}

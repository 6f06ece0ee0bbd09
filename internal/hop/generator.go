package hop

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/hopbunny/internal/config"
)

// Generator handles spawning, movement, and recycling of platforms.
// It is the only writer of the platform set.
type Generator struct {
	pool       *PlatformPool
	rng        *rand.Rand
	cfg        *config.HopConfig
	difficulty *config.DifficultyManager
	worldW     float64
	reach      float64 // Tallest gap a normal bounce is guaranteed to clear

	nextID    uint64
	highestY  float64 // Top of the highest platform spawned so far
	lastSolid Platform
	level     float64
}

// NewGenerator creates a generator for a world worldW cells wide.
func NewGenerator(seed int64, worldW float64, cfg *config.HopConfig, diff *config.DifficultyManager) *Generator {
	g := &Generator{
		pool:       NewPlatformPool(cfg.Platforms.Capacity),
		cfg:        cfg,
		difficulty: diff,
		worldW:     worldW,
	}
	g.reach = cfg.Physics.MaxJumpHeight() * cfg.Platforms.ReachSafety
	g.rng = rand.New(rand.NewSource(seed))
	return g
}

// Reset clears all platforms, reseeds the RNG and lays out the starting
// ledge with its top at startY, centered on centerX.
func (g *Generator) Reset(seed int64, centerX, startY float64) {
	g.pool.Reset()
	g.rng = rand.New(rand.NewSource(seed))
	g.nextID = 0
	g.level = g.difficulty.Level(0, 0)

	w := math.Min(g.worldW, math.Max(g.cfg.Platforms.Width, g.cfg.Platforms.WidthAt(g.level))*2)
	x := clampRange(centerX-w/2, 0, g.worldW-w)
	start := g.spawn(x, startY, w, KindNormal)
	g.highestY = startY
	g.lastSolid = start
}

// Reach returns the tallest vertical gap the generator will leave between
// bounceable platforms.
func (g *Generator) Reach() float64 {
	return g.reach
}

// Level returns the difficulty level used for the latest spawns.
func (g *Generator) Level() float64 {
	return g.level
}

// Platforms returns the pool slots, dead ones included. The slice is only
// valid until the next Update.
func (g *Generator) Platforms() []Platform {
	return g.pool.Slots()
}

// Alive returns a copy of the live platforms ordered by spawn ID.
func (g *Generator) Alive() []Platform {
	out := make([]Platform, 0, g.pool.Len())
	for _, p := range g.pool.Slots() {
		if p.Alive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Land applies the effect of a landing on slot idx. Breaking platforms
// crumble and are released.
func (g *Generator) Land(idx int) {
	if idx < 0 || idx >= g.pool.Cap() {
		return
	}
	if g.pool.At(idx).Kind == KindBreaking {
		g.pool.Release(idx)
	}
}

// Update moves platforms, recycles those below the view and spawns new
// ones until the region above the view is filled.
func (g *Generator) Update(cam Camera, score, ticks int) {
	g.level = g.difficulty.Level(score, ticks)
	g.move()
	g.recycle(cam.Bottom() + g.cfg.Platforms.RecycleMargin)
	g.fill(cam.Top() - g.cfg.Platforms.SpawnAhead)
}

// Fill spawns platforms until the highest one is above limitY.
func (g *Generator) Fill(limitY float64) {
	g.fill(limitY)
}

func (g *Generator) fill(limitY float64) {
	for g.highestY > limitY {
		g.spawnNext()
	}
}

// move slides moving platforms and bounces them off the world edges.
func (g *Generator) move() {
	slots := g.pool.Slots()
	for i := range slots {
		p := &slots[i]
		if !p.Alive || p.Kind != KindMoving {
			continue
		}
		p.Pos.X += p.VX
		maxX := math.Max(0, g.worldW-p.W)
		if p.Pos.X <= 0 {
			p.Pos.X = 0
			p.VX = math.Abs(p.VX)
		} else if p.Pos.X >= maxX {
			p.Pos.X = maxX
			p.VX = -math.Abs(p.VX)
		}
	}
}

// recycle releases platforms whose top is below limitY.
func (g *Generator) recycle(limitY float64) {
	slots := g.pool.Slots()
	for i := range slots {
		if slots[i].Alive && slots[i].Pos.Y > limitY {
			g.pool.Release(i)
		}
	}
}

// spawnNext places one platform above the current highest one.
func (g *Generator) spawnNext() {
	lo, hi := g.cfg.Platforms.GapRange(g.level, g.reach)
	gap := lo + g.rng.Float64()*(hi-lo)
	// After a breaking ledge the gap is measured from the last bounceable one.
	if slack := g.reach - (g.lastSolid.Pos.Y - g.highestY); gap > slack {
		gap = slack
	}
	y := g.highestY - gap

	kind := g.pickKind()
	// A breaking ledge does not bounce, so the next one must still be
	// reachable from the last bounceable ledge.
	if kind == KindBreaking && (g.lastSolid.Pos.Y-y)+hi > g.reach {
		kind = KindNormal
	}

	w := math.Min(g.cfg.Platforms.WidthAt(g.level), g.worldW)
	var x float64
	if kind == KindBreaking {
		x = g.rng.Float64() * math.Max(0, g.worldW-w)
	} else {
		x = g.reachableX(w, g.lastSolid.Pos.Y-y)
	}

	p := g.spawn(x, y, w, kind)
	g.highestY = y
	if kind.Bounces() {
		g.lastSolid = p
	}
}

// reachableX picks a left edge whose center the bunny can steer to from
// the last bounceable platform while rising rise cells.
func (g *Generator) reachableX(w, rise float64) float64 {
	phys := g.cfg.Physics
	span := phys.MoveSpeed * airtime(phys, rise) * g.cfg.Platforms.ReachSafety
	from := g.lastSolid.Center() - w/2
	lo := clampRange(from-span, 0, g.worldW-w)
	hi := clampRange(from+span, 0, g.worldW-w)
	return lo + g.rng.Float64()*(hi-lo)
}

func (g *Generator) pickKind() Kind {
	w := g.cfg.Platforms.WeightsAt(g.level)
	total := w.Total()
	if total <= 0 {
		return KindNormal
	}
	r := g.rng.Float64() * total
	switch {
	case r < w.Normal:
		return KindNormal
	case r < w.Normal+w.Moving:
		return KindMoving
	case r < w.Normal+w.Moving+w.Breaking:
		return KindBreaking
	default:
		return KindSpring
	}
}

func (g *Generator) spawn(x, y, w float64, kind Kind) Platform {
	g.nextID++
	p := Platform{ID: g.nextID, W: w, Kind: kind}
	p.Pos.X = x
	p.Pos.Y = y
	if kind == KindMoving {
		p.VX = g.cfg.Platforms.MovingSpeed
		if g.rng.Intn(2) == 0 {
			p.VX = -p.VX
		}
	}
	g.pool.Acquire(p)
	p.Alive = true
	return p
}

// ReachableAbove reports whether a live bounceable platform sits above y
// within the guaranteed reach.
func (g *Generator) ReachableAbove(y float64) bool {
	for _, p := range g.pool.Slots() {
		if !p.Alive || !p.Kind.Bounces() {
			continue
		}
		if p.Pos.Y < y && y-p.Pos.Y <= g.reach+landingEpsilon {
			return true
		}
	}
	return false
}

// airtime returns how many ticks a normal bounce stays at or above rise
// cells over the launch point.
func airtime(phys config.PhysicsConfig, rise float64) float64 {
	if phys.Gravity <= 0 {
		return 0
	}
	v := phys.JumpVelocity
	disc := v*v - 2*phys.Gravity*rise
	if disc < 0 {
		disc = 0
	}
	return (v + math.Sqrt(disc)) / phys.Gravity
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

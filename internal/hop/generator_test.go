package hop

import (
	"reflect"
	"sort"
	"testing"

	"github.com/vovakirdan/hopbunny/internal/config"
)

func newTestGenerator(seed int64, level float64) *Generator {
	cfg := config.DefaultHopConfig()
	diff := config.NewDifficultyManager(cfg.Difficulty)
	diff.SetInitialLevel(level)
	diff.SetEnabled(false)
	g := NewGenerator(seed, 80, &cfg, diff)
	g.Reset(seed, 40, 20)
	return g
}

func TestGeneratorDeterminism(t *testing.T) {
	g1 := newTestGenerator(7, 0.3)
	g2 := newTestGenerator(7, 0.3)

	cam := NewCamera(23, 10)
	for i := 0; i < 500; i++ {
		cam.Y += 0.5
		g1.Update(cam, i, i)
		g2.Update(cam, i, i)
	}

	if !reflect.DeepEqual(g1.Alive(), g2.Alive()) {
		t.Error("same seed produced different platform layouts")
	}

	g3 := newTestGenerator(8, 0.3)
	g3.Update(NewCamera(23, 10), 0, 0)
	g4 := newTestGenerator(7, 0.3)
	g4.Update(NewCamera(23, 10), 0, 0)
	if reflect.DeepEqual(g3.Alive(), g4.Alive()) {
		t.Error("different seeds produced identical layouts")
	}
}

func TestGeneratorNeverStrands(t *testing.T) {
	for _, level := range []float64{0, 0.5, 1} {
		for seed := int64(1); seed <= 20; seed++ {
			g := newTestGenerator(seed, level)
			g.Fill(-3000)

			var solid []Platform
			for _, p := range g.Alive() {
				if p.Kind.Bounces() {
					solid = append(solid, p)
				}
			}
			// Highest first.
			sort.Slice(solid, func(i, j int) bool { return solid[i].Pos.Y < solid[j].Pos.Y })

			for i := 1; i < len(solid); i++ {
				gap := solid[i].Pos.Y - solid[i-1].Pos.Y
				if gap > g.Reach()+landingEpsilon {
					t.Fatalf("level %v seed %d: gap %v between %d and %d exceeds reach %v",
						level, seed, gap, solid[i].ID, solid[i-1].ID, g.Reach())
				}
			}
			if len(solid) < 100 {
				t.Errorf("level %v seed %d: only %d bounceable platforms", level, seed, len(solid))
			}
		}
	}
}

func TestGeneratorGapsFollowDifficulty(t *testing.T) {
	easy := newTestGenerator(3, 0)
	hard := newTestGenerator(3, 1)
	easy.Fill(-1000)
	hard.Fill(-1000)

	if len(hard.Alive()) >= len(easy.Alive()) {
		t.Errorf("hard layout has %d platforms, want fewer than easy %d",
			len(hard.Alive()), len(easy.Alive()))
	}

	cfg := config.DefaultHopConfig()
	for _, p := range hard.Alive()[1:] {
		if p.W != cfg.Platforms.HardWidth {
			t.Fatalf("hard platform width = %v, want %v", p.W, cfg.Platforms.HardWidth)
		}
	}
}

func TestGeneratorRecyclesBelowView(t *testing.T) {
	g := newTestGenerator(11, 0.5)
	cam := NewCamera(23, 10)

	for i := 0; i < 5000; i++ {
		cam.Y += 0.3
		g.Update(cam, i, i)

		limit := cam.Bottom() + g.cfg.Platforms.RecycleMargin
		for _, p := range g.Alive() {
			if p.Pos.Y > limit {
				t.Fatalf("tick %d: platform %d at y=%v below recycle line %v", i, p.ID, p.Pos.Y, limit)
			}
		}
	}

	// The view is 23 rows; a bounded working set keeps the arena small.
	if g.pool.Cap() > 40 {
		t.Errorf("pool grew to %d slots, want slot reuse to bound it", g.pool.Cap())
	}
}

func TestGeneratorMovingPlatformsStayInWorld(t *testing.T) {
	cfg := config.DefaultHopConfig()
	cfg.Platforms.Weights.Easy = config.KindWeights{Moving: 1}
	diff := config.NewDifficultyManager(cfg.Difficulty)
	diff.SetEnabled(false)
	g := NewGenerator(5, 40, &cfg, diff)
	g.Reset(5, 20, 20)

	cam := NewCamera(23, 10)
	g.Fill(cam.Top() - cfg.Platforms.SpawnAhead)
	before := g.Alive()
	for i := 0; i < 1000; i++ {
		g.Update(cam, 0, i)
		for _, p := range g.Alive() {
			if p.Pos.X < 0 || p.Pos.X+p.W > 40+landingEpsilon {
				t.Fatalf("tick %d: platform %d left the world at x=%v", i, p.ID, p.Pos.X)
			}
		}
		if i == 9 {
			after := g.Alive()
			moved := false
			for j := range before {
				if before[j].Kind == KindMoving && before[j].Pos.X != after[j].Pos.X {
					moved = true
				}
			}
			if !moved {
				t.Error("moving platforms did not move")
			}
		}
	}
}

func TestGeneratorLandBreaksBreakingOnly(t *testing.T) {
	g := newTestGenerator(1, 0)
	solid := g.pool.Acquire(Platform{ID: 900, Kind: KindNormal})
	brittle := g.pool.Acquire(Platform{ID: 901, Kind: KindBreaking})

	g.Land(solid)
	g.Land(brittle)
	g.Land(-1)

	if !g.pool.Slots()[solid].Alive {
		t.Error("normal platform should survive a landing")
	}
	if g.pool.Slots()[brittle].Alive {
		t.Error("breaking platform should crumble on landing")
	}
}

func TestGeneratorResetStartsFromScratch(t *testing.T) {
	g := newTestGenerator(9, 0)
	g.Fill(-500)

	g.Reset(9, 40, 20)
	alive := g.Alive()
	if len(alive) != 1 {
		t.Fatalf("after Reset %d platforms, want only the start ledge", len(alive))
	}
	if alive[0].ID != 1 || alive[0].Pos.Y != 20 || alive[0].Kind != KindNormal {
		t.Errorf("start ledge = %+v", alive[0])
	}
	if c := alive[0].Center(); c != 40 {
		t.Errorf("start ledge center = %v, want 40", c)
	}
}

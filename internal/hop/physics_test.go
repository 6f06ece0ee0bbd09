package hop

import (
	"math"
	"testing"

	"github.com/vovakirdan/hopbunny/internal/config"
	"github.com/vovakirdan/hopbunny/internal/core"
)

func testPhysics() config.PhysicsConfig {
	return config.PhysicsConfig{
		Gravity:        0.5,
		JumpVelocity:   8,
		SpringVelocity: 14,
		MoveSpeed:      1,
		MaxFallSpeed:   20,
		EdgeMode:       config.EdgeWrap,
	}
}

func TestIntegrateAppliesGravity(t *testing.T) {
	p := Player{Pos: core.Vec{X: 100, Y: 500}, W: 3, H: 2}

	got := Integrate(p, 1, testPhysics())

	if got.Pos.Y != 500.5 {
		t.Errorf("y = %v, want 500.5", got.Pos.Y)
	}
	if got.Vel.Y != 0.5 {
		t.Errorf("vy = %v, want 0.5", got.Vel.Y)
	}
	if got.Pos.X != 100 {
		t.Errorf("x = %v, want 100 without steering", got.Pos.X)
	}
	if !got.Falling {
		t.Error("player moving down should be falling")
	}
}

func TestIntegrateCapsFallSpeed(t *testing.T) {
	cfg := testPhysics()
	p := Player{Vel: core.Vec{Y: cfg.MaxFallSpeed}}

	got := Integrate(p, 1, cfg)

	if got.Vel.Y != cfg.MaxFallSpeed {
		t.Errorf("vy = %v, want capped at %v", got.Vel.Y, cfg.MaxFallSpeed)
	}
	if got.Pos.Y != cfg.MaxFallSpeed {
		t.Errorf("y = %v, want %v", got.Pos.Y, cfg.MaxFallSpeed)
	}
}

func TestIntegrateSteering(t *testing.T) {
	tests := []struct {
		name  string
		dir   core.Direction
		wantX float64
	}{
		{"left", core.DirLeft, 9},
		{"none", core.DirNone, 10},
		{"right", core.DirRight, 11},
		{"out of range folds to right", core.Direction(5), 11},
		{"out of range folds to left", core.Direction(-3), 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Player{Pos: core.Vec{X: 10}, Dir: tt.dir}
			got := Integrate(p, 1, testPhysics())
			if got.Pos.X != tt.wantX {
				t.Errorf("x = %v, want %v", got.Pos.X, tt.wantX)
			}
		})
	}
}

func TestApplyEdges(t *testing.T) {
	tests := []struct {
		name  string
		mode  config.EdgeMode
		x     float64
		wantX float64
	}{
		{"wrap past right", config.EdgeWrap, 81, 1},
		{"wrap past left", config.EdgeWrap, -2, 78},
		{"wrap inside", config.EdgeWrap, 40, 40},
		{"clamp right", config.EdgeClamp, 79, 77},
		{"clamp left", config.EdgeClamp, -2, 0},
		{"clamp inside", config.EdgeClamp, 40, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Player{Pos: core.Vec{X: tt.x}, W: 3, H: 2}
			got := ApplyEdges(p, 80, tt.mode)
			if got.Pos.X != tt.wantX {
				t.Errorf("x = %v, want %v", got.Pos.X, tt.wantX)
			}
		})
	}
}

func TestResolveLandingSnapsToTop(t *testing.T) {
	cfg := testPhysics()
	prev := Player{Pos: core.Vec{X: 100, Y: 515}, Vel: core.Vec{Y: 5}, W: 3, H: 2}
	next := prev
	next.Pos.Y = 525

	tests := []struct {
		kind   Kind
		wantVY float64
	}{
		{KindNormal, -cfg.JumpVelocity},
		{KindMoving, -cfg.JumpVelocity},
		{KindSpring, -cfg.SpringVelocity},
		{KindBreaking, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			platforms := []Platform{{ID: 1, Pos: core.Vec{X: 95, Y: 520}, W: 10, Kind: tt.kind, Alive: true}}

			got, idx := ResolveLanding(prev, next, platforms, cfg, 800)

			if idx != 0 {
				t.Fatalf("landed index = %d, want 0", idx)
			}
			if got.Pos.Y != 520 {
				t.Errorf("y = %v, want snapped to 520", got.Pos.Y)
			}
			if got.Vel.Y != tt.wantVY {
				t.Errorf("vy = %v, want %v", got.Vel.Y, tt.wantVY)
			}
			if got.Falling {
				t.Error("landed player should not be falling")
			}
		})
	}
}

func TestResolveLandingIsOneWay(t *testing.T) {
	cfg := testPhysics()
	ledge := Platform{ID: 1, Pos: core.Vec{X: 10, Y: 50}, W: 10, Alive: true}

	tests := []struct {
		name       string
		prev, next Player
	}{
		{
			name: "rising through from below",
			prev: Player{Pos: core.Vec{X: 12, Y: 53}, Vel: core.Vec{Y: -4}, W: 3, H: 2},
			next: Player{Pos: core.Vec{X: 12, Y: 49}, Vel: core.Vec{Y: -4}, W: 3, H: 2},
		},
		{
			name: "falling but already below the top",
			prev: Player{Pos: core.Vec{X: 12, Y: 51}, Vel: core.Vec{Y: 2}, W: 3, H: 2},
			next: Player{Pos: core.Vec{X: 12, Y: 53}, Vel: core.Vec{Y: 2}, W: 3, H: 2},
		},
		{
			name: "falling beside the ledge",
			prev: Player{Pos: core.Vec{X: 30, Y: 48}, Vel: core.Vec{Y: 4}, W: 3, H: 2},
			next: Player{Pos: core.Vec{X: 30, Y: 52}, Vel: core.Vec{Y: 4}, W: 3, H: 2},
		},
		{
			name: "touching the edge only",
			prev: Player{Pos: core.Vec{X: 20, Y: 48}, Vel: core.Vec{Y: 4}, W: 3, H: 2},
			next: Player{Pos: core.Vec{X: 20, Y: 52}, Vel: core.Vec{Y: 4}, W: 3, H: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, idx := ResolveLanding(tt.prev, tt.next, []Platform{ledge}, cfg, 80)
			if idx != -1 {
				t.Errorf("landed on %d, want no landing", idx)
			}
			if got != tt.next {
				t.Errorf("player changed to %+v, want %+v", got, tt.next)
			}
		})
	}
}

func TestResolveLandingSkipsDeadPlatforms(t *testing.T) {
	prev := Player{Pos: core.Vec{X: 10, Y: 48}, Vel: core.Vec{Y: 4}, W: 3, H: 2}
	next := prev
	next.Pos.Y = 52
	platforms := []Platform{{ID: 1, Pos: core.Vec{X: 5, Y: 50}, W: 10}}

	if _, idx := ResolveLanding(prev, next, platforms, testPhysics(), 80); idx != -1 {
		t.Errorf("landed on dead platform %d", idx)
	}
}

func TestResolveLandingOrderIndependent(t *testing.T) {
	cfg := testPhysics()
	prev := Player{Pos: core.Vec{X: 10, Y: 40}, Vel: core.Vec{Y: 10}, W: 3, H: 2}
	next := prev
	next.Pos.Y = 50

	platforms := []Platform{
		{ID: 1, Pos: core.Vec{X: 8, Y: 47}, W: 6, Alive: true},
		{ID: 2, Pos: core.Vec{X: 9, Y: 43}, W: 6, Alive: true},
		{ID: 3, Pos: core.Vec{X: 7, Y: 43}, W: 6, Alive: true},
		{ID: 4, Pos: core.Vec{X: 7, Y: 43}, W: 6, Alive: true},
	}
	// First top crossed is y=43; of those x=7 wins, then the lower ID.
	const wantID = 3

	perms := permutations(len(platforms))
	for _, perm := range perms {
		shuffled := make([]Platform, len(platforms))
		for i, j := range perm {
			shuffled[i] = platforms[j]
		}
		got, idx := ResolveLanding(prev, next, shuffled, cfg, 80)
		if idx < 0 {
			t.Fatalf("order %v: no landing", perm)
		}
		if shuffled[idx].ID != wantID {
			t.Errorf("order %v: landed on ID %d, want %d", perm, shuffled[idx].ID, wantID)
		}
		if got.Pos.Y != 43 {
			t.Errorf("order %v: y = %v, want 43", perm, got.Pos.Y)
		}
	}
}

func TestResolveLandingAcrossWrapEdge(t *testing.T) {
	prev := Player{Pos: core.Vec{X: 78.5, Y: 48}, Vel: core.Vec{Y: 4}, W: 3, H: 2}
	next := prev
	next.Pos.Y = 52
	platforms := []Platform{{ID: 1, Pos: core.Vec{X: 0, Y: 50}, W: 5, Alive: true}}

	cfg := testPhysics()
	if _, idx := ResolveLanding(prev, next, platforms, cfg, 80); idx != 0 {
		t.Errorf("wrap mode: landed index = %d, want 0", idx)
	}

	cfg.EdgeMode = config.EdgeClamp
	if _, idx := ResolveLanding(prev, next, platforms, cfg, 80); idx != -1 {
		t.Errorf("clamp mode: landed index = %d, want -1", idx)
	}
}

func TestMaxJumpHeightMatchesIntegration(t *testing.T) {
	cfg := testPhysics()
	cfg.MaxFallSpeed = 0
	p := Player{Vel: core.Vec{Y: -cfg.JumpVelocity}}

	apex := 0.0
	for i := 0; i < 100; i++ {
		p = Integrate(p, 1, cfg)
		apex = math.Min(apex, p.Pos.Y)
	}

	// Semi-implicit steps stop short of the continuous apex by at most v/2.
	want := cfg.MaxJumpHeight()
	if -apex > want || -apex < want-cfg.JumpVelocity/2 {
		t.Errorf("apex = %v, want within [%v, %v]", -apex, want-cfg.JumpVelocity/2, want)
	}
}

// permutations returns every ordering of 0..n-1.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			perm := make([]int, 0, n)
			perm = append(perm, p[:i]...)
			perm = append(perm, n-1)
			perm = append(perm, p[i:]...)
			out = append(out, perm)
		}
	}
	return out
}

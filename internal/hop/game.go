// Package hop implements Hop Bunny, an endless vertical hopping game.
// The bunny bounces automatically on one-way platforms while the player
// steers left and right; the view scrolls up as the bunny climbs and the
// session ends when it falls below the view.
//
// The package is a pure simulation: it never blocks, never touches the
// terminal and talks to storage only through the ScoreSink and
// HighScoreStore interfaces.
package hop

import (
	"math"

	"github.com/vovakirdan/hopbunny/internal/config"
	"github.com/vovakirdan/hopbunny/internal/core"
)

// Layout constants for the terminal view.
const (
	HUDRows   = 1  // Rows reserved for the score line
	minWorldW = 12 // Narrowest playable world
	minViewH  = 8  // Shortest playable view
	startLift = 3  // Rows between the starting ledge and the view bottom
)

// Phase is the session state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// ScoreSink receives the final score of a finished session. Calls must
// return promptly; delivery is best effort.
type ScoreSink interface {
	SubmitScore(player string, score int)
}

// HighScoreStore persists the best local score per player.
type HighScoreStore interface {
	Load(player string) (int, error)
	Save(player string, score int) error
}

// Option configures a Game.
type Option func(*Game)

// WithScoreSink sets where final scores are submitted.
func WithScoreSink(s ScoreSink) Option {
	return func(g *Game) { g.sink = s }
}

// WithHighScoreStore sets the local high score store.
func WithHighScoreStore(s HighScoreStore) Option {
	return func(g *Game) { g.store = s }
}

// FrameState is a read-only snapshot for renderers.
type FrameState struct {
	Phase     Phase
	Paused    bool
	Player    Player
	Platforms []Platform // Live platforms ordered by ID
	CameraY   float64
	ViewTop   float64
	ViewH     float64
	WorldW    float64
	Score     int
	HighScore int
	Level     float64
	Ticks     int
}

// Game implements the Hop Bunny session state machine.
type Game struct {
	cfg        config.HopConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	gen        *Generator
	player     Player
	camera     Camera
	worldW     float64
	phase      Phase
	paused     bool
	score      int
	highScore  int
	ticks      int
	sink       ScoreSink
	store      HighScoreStore
}

// New creates a game from cfg and resets it with the default runtime
// settings. Call Reset with the real screen size before the first Step.
func New(cfg config.HopConfig, opts ...Option) *Game {
	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.Reset(core.DefaultConfig())
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "hopbunny"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Hop Bunny"
}

// Config returns the tunables the game was built with.
func (g *Game) Config() config.HopConfig {
	return g.cfg
}

// Reset re-initializes the session for the given runtime settings and
// enters Idle. The local high score is reloaded.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if rt.Player != g.runtime.Player {
		g.highScore = 0
	}
	g.runtime = rt
	g.worldW = math.Max(float64(rt.ScreenW), minWorldW)
	viewH := math.Max(float64(rt.ScreenH-HUDRows), minViewH)

	g.camera = NewCamera(viewH, g.cfg.Camera.Margin)
	g.player = Player{W: g.cfg.Player.Width, H: g.cfg.Player.Height}
	g.player.Pos = core.Vec{X: (g.worldW - g.player.W) / 2, Y: viewH - startLift}

	if g.gen == nil {
		g.gen = NewGenerator(rt.Seed, g.worldW, &g.cfg, g.difficulty)
	} else {
		g.gen.worldW = g.worldW
	}
	g.gen.Reset(rt.Seed, g.worldW/2, g.player.Pos.Y)
	g.gen.Fill(g.camera.Top() - g.cfg.Platforms.SpawnAhead)

	g.phase = PhaseIdle
	g.paused = false
	g.score = 0
	g.ticks = 0
	g.loadHighScore()
}

// Restart resets the session with the current runtime settings.
func (g *Game) Restart() {
	g.Reset(g.runtime)
}

// Start leaves Idle. It reports whether the session is now running.
func (g *Game) Start() bool {
	if g.phase == PhaseIdle {
		g.phase = PhaseRunning
	}
	return g.phase == PhaseRunning
}

// Step advances the game by one tick. Restart is applied before anything
// else in the tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Restart()
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case PhaseIdle:
		if in.Has(core.ActionStart) {
			g.Start()
		}
		return core.StepResult{State: g.State()}
	case PhaseGameOver:
		return core.StepResult{State: g.State()}
	}

	// Pausing freezes this tick; resuming simulates it.
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tick(in.Dir)
	return core.StepResult{State: g.State()}
}

// tick runs physics, camera, generator and the terminal check in order.
func (g *Game) tick(dir core.Direction) {
	g.ticks++
	phys := g.cfg.Physics

	prev := g.player
	prev.Dir = dir.Normalize()
	next := Integrate(prev, 1, phys)
	next = ApplyEdges(next, g.worldW, phys.EdgeMode)
	next, landed := ResolveLanding(prev, next, g.gen.Platforms(), phys, g.worldW)
	g.player = next

	g.camera.Follow(g.player.Pos.Y)

	g.gen.Land(landed)
	g.gen.Update(g.camera, g.score, g.ticks)

	if s := g.heightScore(); s > g.score {
		g.score = s
	}
	if g.player.Pos.Y > g.camera.Bottom()+g.cfg.Camera.DeathMargin {
		g.endGame()
	}
}

func (g *Game) heightScore() int {
	return int(math.Floor(g.camera.Y * g.cfg.Scoring.PointsPerCell))
}

// endGame freezes the session, updates the local best and hands the score
// to the sink. Storage errors never reach the game.
func (g *Game) endGame() {
	g.phase = PhaseGameOver
	if g.score > g.highScore {
		g.highScore = g.score
		if g.store != nil {
			_ = g.store.Save(g.runtime.Player, g.score)
		}
	}
	if g.sink != nil && g.score > 0 {
		g.sink.SubmitScore(g.runtime.Player, g.score)
	}
}

func (g *Game) loadHighScore() {
	if g.store == nil {
		return
	}
	if best, err := g.store.Load(g.runtime.Player); err == nil && best > g.highScore {
		g.highScore = best
	}
}

// Phase returns the session state.
func (g *Game) Phase() Phase {
	return g.phase
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		HighScore: g.highScore,
		Started:   g.phase != PhaseIdle,
		GameOver:  g.phase == PhaseGameOver,
		Paused:    g.paused,
	}
}

// Frame returns a snapshot of everything a renderer needs.
func (g *Game) Frame() FrameState {
	return FrameState{
		Phase:     g.phase,
		Paused:    g.paused,
		Player:    g.player,
		Platforms: g.gen.Alive(),
		CameraY:   g.camera.Y,
		ViewTop:   g.camera.Top(),
		ViewH:     g.camera.ViewH,
		WorldW:    g.worldW,
		Score:     g.score,
		HighScore: g.highScore,
		Level:     g.gen.Level(),
		Ticks:     g.ticks,
	}
}

// ReachableAbove reports whether a bounceable platform is within reach
// above the bunny.
func (g *Game) ReachableAbove() bool {
	return g.gen.ReachableAbove(g.player.Pos.Y)
}

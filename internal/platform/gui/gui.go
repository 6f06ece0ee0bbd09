// Package gui provides the Ebiten window front end for Hop Bunny.
// World units are terminal cells; each cell is drawn as a square of
// CellPx pixels.
package gui

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/hopbunny/internal/core"
	"github.com/vovakirdan/hopbunny/internal/hop"
)

// DefaultCellPx is the pixel size of one world cell at scale 1.
const DefaultCellPx = 12

// Palette
var (
	colorBackground = color.RGBA{R: 24, G: 26, B: 48, A: 255}
	colorHUD        = color.RGBA{R: 60, G: 40, B: 140, A: 255}
	colorNormal     = color.RGBA{R: 90, G: 200, B: 90, A: 255}
	colorMoving     = color.RGBA{R: 80, G: 200, B: 220, A: 255}
	colorBreaking   = color.RGBA{R: 230, G: 140, B: 40, A: 255}
	colorSpring     = color.RGBA{R: 230, G: 90, B: 220, A: 255}
	colorBunny      = color.RGBA{R: 245, G: 245, B: 245, A: 255}
	colorEar        = color.RGBA{R: 250, G: 180, B: 200, A: 255}
	colorShade      = color.RGBA{R: 0, G: 0, B: 0, A: 150}
)

// keySource reports key state. The window reads ebiten; tests fake it.
type keySource interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (ebitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Key bindings, mirroring the terminal front end.
var (
	leftKeys    = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys   = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	startKeys   = []ebiten.Key{ebiten.KeySpace, ebiten.KeyEnter, ebiten.KeyArrowUp, ebiten.KeyW}
	pauseKeys   = []ebiten.Key{ebiten.KeyP}
	restartKeys = []ebiten.Key{ebiten.KeyR}
	quitKeys    = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ}
)

func anyPressed(src keySource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if src.Pressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(src keySource, keys []ebiten.Key) bool {
	for _, k := range keys {
		if src.JustPressed(k) {
			return true
		}
	}
	return false
}

// readInput builds the input frame for one tick. Windows report held
// keys, so steering follows the keyboard directly; both directions at
// once cancel out.
func readInput(src keySource) (frame core.InputFrame, quit bool) {
	frame = core.NewInputFrame()

	if anyPressed(src, leftKeys) {
		frame.Dir--
	}
	if anyPressed(src, rightKeys) {
		frame.Dir++
	}

	if anyJustPressed(src, startKeys) {
		frame.Set(core.ActionStart)
	}
	if anyJustPressed(src, pauseKeys) {
		frame.Set(core.ActionPause)
	}
	if anyJustPressed(src, restartKeys) {
		frame.Set(core.ActionRestart)
	}
	return frame, anyJustPressed(src, quitKeys)
}

// Window implements ebiten.Game on top of a hop.Game.
type Window struct {
	game   *hop.Game
	rt     core.RuntimeConfig
	cellPx int
	keys   keySource
	logger *log.Logger
	state  core.GameState

	newSeed func() int64
}

func timeSeed() int64 { return time.Now().UnixNano() }

// NewWindow wraps game for an rt.ScreenW x rt.ScreenH cell view.
// A zero rt.Seed is replaced with the current time.
func NewWindow(game *hop.Game, rt core.RuntimeConfig, scale float64, logger *log.Logger) *Window {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	if rt.Seed == 0 {
		rt.Seed = timeSeed()
	}
	game.Reset(rt)
	return &Window{
		game:    game,
		rt:      rt,
		cellPx:  max(1, int(math.Round(DefaultCellPx*scale))),
		keys:    ebitenKeys{},
		logger:  logger,
		state:   game.State(),
		newSeed: timeSeed,
	}
}

// Update advances the simulation by one tick.
func (w *Window) Update() error {
	frame, quit := readInput(w.keys)
	if quit {
		return ebiten.Termination
	}

	// Restart with a fresh seed so every run has a new layout
	if frame.Has(core.ActionRestart) {
		w.rt.Seed = w.newSeed()
		w.game.Reset(w.rt)
		w.state = w.game.State()
		return nil
	}

	prev := w.state
	w.state = w.game.Step(frame).State
	if w.state.GameOver && !prev.GameOver {
		w.logger.Info("game over", "player", w.rt.Player, "score", w.state.Score, "best", w.state.HighScore)
	}
	return nil
}

// Draw renders the current frame.
func (w *Window) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	f := w.game.Frame()

	for _, p := range f.Platforms {
		w.drawPlatform(screen, f, p)
	}
	w.drawBunny(screen, f)
	w.drawHUD(screen, f)

	switch {
	case f.Phase == hop.PhaseIdle:
		w.drawMessage(screen, "HOP BUNNY", "Space to start, arrows to steer")
	case f.Phase == hop.PhaseGameOver:
		w.drawMessage(screen, "GAME OVER",
			fmt.Sprintf("Score: %d  Best: %d  R to restart", f.Score, f.HighScore))
	case f.Paused:
		w.drawMessage(screen, "PAUSED", "P to resume")
	}
}

// Layout returns the logical screen size.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.rt.ScreenW * w.cellPx, w.rt.ScreenH * w.cellPx
}

// toScreen maps world coordinates to pixels below the HUD bar.
func (w *Window) toScreen(f hop.FrameState, x, y float64) (float32, float32) {
	px := x * float64(w.cellPx)
	py := (float64(hop.HUDRows) + y - f.ViewTop) * float64(w.cellPx)
	return float32(px), float32(py)
}

func platformColor(k hop.Kind) color.Color {
	switch k {
	case hop.KindMoving:
		return colorMoving
	case hop.KindBreaking:
		return colorBreaking
	case hop.KindSpring:
		return colorSpring
	default:
		return colorNormal
	}
}

func (w *Window) drawPlatform(screen *ebiten.Image, f hop.FrameState, p hop.Platform) {
	x, y := w.toScreen(f, p.Pos.X, p.Pos.Y)
	cell := float32(w.cellPx)
	width := float32(p.W) * cell
	thick := max(2, cell/3)

	if p.Kind == hop.KindBreaking {
		// Dashed slab
		for dx := float32(0); dx < width; dx += cell {
			vector.DrawFilledRect(screen, x+dx, y, min(cell*0.6, width-dx), thick, colorBreaking, false)
		}
		return
	}
	vector.DrawFilledRect(screen, x, y, width, thick, platformColor(p.Kind), false)
	if p.Kind == hop.KindSpring {
		vector.DrawFilledRect(screen, x+width/2-cell/4, y-cell/2, cell/2, cell/2, colorSpring, false)
	}
}

func (w *Window) drawBunny(screen *ebiten.Image, f hop.FrameState) {
	p := f.Player
	cell := float32(w.cellPx)
	width := float32(p.W) * cell
	height := float32(p.H) * cell

	// Draw once more on the far side while straddling a wrapped edge.
	offsets := []float64{0}
	if p.Pos.X+p.W > f.WorldW {
		offsets = append(offsets, -f.WorldW)
	}
	for _, off := range offsets {
		x, y := w.toScreen(f, p.Pos.X+off, p.Pos.Y-p.H)
		vector.DrawFilledRect(screen, x, y+height/3, width, height*2/3, colorBunny, false)
		vector.DrawFilledRect(screen, x+width/5, y, width/5, height/3, colorEar, false)
		vector.DrawFilledRect(screen, x+width*3/5, y, width/5, height/3, colorEar, false)
	}
}

func (w *Window) drawHUD(screen *ebiten.Image, f hop.FrameState) {
	sw := float32(w.rt.ScreenW * w.cellPx)
	vector.DrawFilledRect(screen, 0, 0, sw, float32(hop.HUDRows*w.cellPx), colorHUD, false)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Score: %d  Best: %d  Lv %d%%", f.Score, f.HighScore, int(math.Round(f.Level*100))),
		4, 0)
}

func (w *Window) drawMessage(screen *ebiten.Image, title, hint string) {
	sw := w.rt.ScreenW * w.cellPx
	sh := w.rt.ScreenH * w.cellPx
	vector.DrawFilledRect(screen, 0, float32(sh/2-24), float32(sw), 48, colorShade, false)

	// DebugPrint glyphs are 6x16 pixels.
	ebitenutil.DebugPrintAt(screen, title, (sw-len(title)*6)/2, sh/2-20)
	ebitenutil.DebugPrintAt(screen, hint, (sw-len(hint)*6)/2, sh/2)
}

// Run opens the window and blocks until it is closed.
func Run(game *hop.Game, rt core.RuntimeConfig, scale float64, logger *log.Logger) error {
	w := NewWindow(game, rt, scale, logger)
	width, height := w.Layout(0, 0)

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetTPS(w.rt.TickRate)

	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: run window: %w", err)
	}
	return nil
}

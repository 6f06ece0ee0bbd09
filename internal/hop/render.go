package hop

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hopbunny/internal/config"
	"github.com/vovakirdan/hopbunny/internal/core"
)

// Visual characters for rendering
const (
	NormalChar   = '='
	MovingChar   = '~'
	BreakingChar = '-'
	SpringChar   = '^'
	BodyChar     = 'o'
)

// bunnySprite is drawn from the top-left of the hitbox; cells outside the
// sprite fall back to BodyChar.
var bunnySprite = []string{
	`(\/`,
	`(")`,
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	f := g.Frame()

	for _, p := range f.Platforms {
		g.drawPlatform(dst, f, p)
	}
	g.drawPlayer(dst, f)
	drawHUD(dst, f)

	switch {
	case f.Phase == PhaseIdle:
		drawCenteredMessage(dst, "HOP BUNNY", "Space to start | arrows to steer")
	case f.Phase == PhaseGameOver:
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  Best: %d  |  Press R to restart", f.Score, f.HighScore))
	case f.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// row maps a world y to a screen row below the HUD.
func row(f FrameState, y float64) int {
	return HUDRows + int(math.Floor(y-f.ViewTop))
}

func (g *Game) drawPlatform(dst *core.Screen, f FrameState, p Platform) {
	y := row(f, p.Pos.Y)
	x := int(math.Round(p.Pos.X))
	w := max(1, int(math.Round(p.W)))

	switch p.Kind {
	case KindMoving:
		dst.DrawHLine(x, y, w, MovingChar, core.ColorMoving)
	case KindBreaking:
		for i := 0; i < w; i++ {
			if i%2 == 0 {
				dst.SetColored(x+i, y, BreakingChar, core.ColorBreaking)
			}
		}
	case KindSpring:
		dst.DrawHLine(x, y, w, NormalChar, core.ColorPlatform)
		dst.SetColored(x+w/2, y, SpringChar, core.ColorSpring)
	default:
		dst.DrawHLine(x, y, w, NormalChar, core.ColorPlatform)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, f FrameState) {
	p := f.Player
	top := row(f, p.Pos.Y-p.H)
	left := int(math.Floor(p.Pos.X))
	w := max(1, int(math.Round(p.W)))
	h := max(1, int(math.Round(p.H)))
	wrap := g.cfg.Physics.EdgeMode != config.EdgeClamp

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			ch := rune(BodyChar)
			if dy < len(bunnySprite) && dx < len(bunnySprite[dy]) {
				ch = rune(bunnySprite[dy][dx])
			}
			x := left + dx
			if wrap {
				x = int(core.Wrap(float64(x), f.WorldW))
			}
			dst.SetColored(x, top+dy, ch, core.ColorBunny)
		}
	}
}

func drawHUD(dst *core.Screen, f FrameState) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorHUD)
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d  Best: %d", f.Score, f.HighScore), core.ColorHUD)
	lvl := fmt.Sprintf("Lv %d%%", int(math.Round(f.Level*100)))
	dst.DrawText(dst.Width()-len(lvl)-1, 0, lvl, core.ColorDim)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	rect := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, core.ColorHUD)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorAlert)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorDefault)
}

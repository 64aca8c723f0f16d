package jumper

import (
	"fmt"
	"math"

	"github.com/vovakirdan/breaktime/internal/core"
)

const (
	playerGlyph   = '@'
	platformGlyph = '='
	minScreenW    = 24
	minScreenH    = 12
)

// viewport maps world coordinates inside the camera window to screen cells.
type viewport struct {
	field  core.Rect
	scaleX float64
	scaleY float64
	camY   float64
}

func (v viewport) cell(x, y float64) (int, int) {
	cx := v.field.X + int(math.Floor(x*v.scaleX))
	cy := v.field.Y + int(math.Floor((y-v.camY)*v.scaleY))
	return cx, cy
}

// layout fits the world into the screen below the HUD row. Terminal cells are
// about twice as tall as they are wide, so columns get double the scale.
func (g *Game) layout(dst *core.Screen) viewport {
	w := g.cfg.World
	fieldH := dst.Height() - 3
	fieldW := int(float64(fieldH) * w.Width / w.Height * 2)
	fieldW = min(fieldW, dst.Width()-2)

	return viewport{
		field:  core.NewRect((dst.Width()-fieldW)/2, 2, fieldW, fieldH),
		scaleX: float64(fieldW) / w.Width,
		scaleY: float64(fieldH) / w.Height,
		camY:   g.camera.Y,
	}
}

// Render draws the HUD, the visible slice of the ladder and the player.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	g.renderHUD(dst)

	vp := g.layout(dst)
	dst.DrawBox(core.NewRect(vp.field.X-1, vp.field.Y-1, vp.field.W+2, vp.field.H+2))

	if g.state != StateMenu {
		g.renderPlatforms(dst, vp)
		g.renderPlayer(dst, vp)
	}
	g.renderOverlay(dst)
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	best := fmt.Sprintf("Best: %d", max(g.highScore, g.score))
	dst.DrawText(dst.Width()-core.TextWidth(best)-1, 0, best)
}

func (g *Game) renderPlatforms(dst *core.Screen, vp viewport) {
	width := max(1, int(math.Round(g.cfg.Platforms.Width*vp.scaleX)))
	for _, p := range g.platforms {
		x, y := vp.cell(p.X, p.Y)
		if !vp.field.Contains(x, y) {
			continue
		}
		for i := range width {
			if vp.field.Contains(x+i, y) {
				dst.SetColor(x+i, y, platformGlyph, core.ColorGreen)
			}
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, vp viewport) {
	size := g.cfg.Player.Size
	// Anchor the glyph at the player's feet so landings line up with rungs.
	x, y := vp.cell(g.player.X+size/2, g.player.Y+size)
	y--
	if vp.field.Contains(x, y) {
		dst.SetColor(x, y, playerGlyph, core.ColorBrightYellow)
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.state == StateMenu:
		dst.DrawMessageBox("TREE JUMP", fmt.Sprintf("High Score: %d  |  ENTER to play", g.highScore))
		dst.DrawTextCentered(dst.Height()-1, "←→ move  ·  walk off a side to wrap  ·  P pause")
	case g.state == StateGameOver:
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  R restart  B menu", g.score))
	case g.paused:
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	}
}

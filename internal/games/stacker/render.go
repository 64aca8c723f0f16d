package stacker

import (
	"fmt"

	"github.com/vovakirdan/breaktime/internal/core"
)

const (
	blockGlyph = '█'
	ghostGlyph = '░'
	emptyGlyph = '·'
	cellWidth  = 2 // terminal cells per board column
	panelWidth = 16
)

// Render draws the board, the active piece, the side panel and any overlay.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	boardW := g.board.Width*cellWidth + 2
	boardH := g.board.Height + 2
	minW, minH := boardW+panelWidth, boardH
	if dst.Width() < minW || dst.Height() < minH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minW, minH))
		return
	}

	originX := (dst.Width() - minW) / 2
	originY := (dst.Height() - boardH) / 2
	dst.DrawBox(core.NewRect(originX, originY, boardW, boardH))

	g.renderBoard(dst, originX+1, originY+1)
	if g.state == StateRunning || g.state == StatePaused {
		g.renderPiece(dst, originX+1, originY+1)
	}
	g.renderPanel(dst, originX+boardW+2, originY)
	g.renderOverlay(dst)
}

func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	for y := range g.board.Height {
		for x := range g.board.Width {
			t := g.board.At(x, y)
			glyph := blockGlyph
			if t == PieceNone {
				glyph = emptyGlyph
			}
			g.drawCell(dst, ox+x*cellWidth, oy+y, glyph, t.Color())
		}
	}
}

func (g *Game) renderPiece(dst *core.Screen, ox, oy int) {
	p := g.piece
	s := p.Type.Shape(p.Rotation)
	ghostY := g.dropRow()

	for r := range s.Height() {
		for c := range s.Width() {
			if !s.Filled(c, r) {
				continue
			}
			x := ox + (p.X+c)*cellWidth
			if gy := ghostY + r; gy >= 0 && ghostY != p.Y {
				g.drawCell(dst, x, oy+gy, ghostGlyph, core.ColorGray)
			}
		}
	}
	for r := range s.Height() {
		for c := range s.Width() {
			if s.Filled(c, r) && p.Y+r >= 0 {
				g.drawCell(dst, ox+(p.X+c)*cellWidth, oy+p.Y+r, blockGlyph, p.Type.Color())
			}
		}
	}
}

func (g *Game) drawCell(dst *core.Screen, x, y int, glyph rune, color core.Color) {
	for i := range cellWidth {
		if glyph == emptyGlyph && i > 0 {
			dst.Set(x+i, y, ' ')
			continue
		}
		dst.SetColor(x+i, y, glyph, color)
	}
}

func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	lines := []string{
		fmt.Sprintf("Score: %d", g.score),
		fmt.Sprintf("Best:  %d", max(g.highScore, g.score)),
		fmt.Sprintf("Lines: %d", g.lines),
		fmt.Sprintf("Level: %d", g.level),
	}
	for i, line := range lines {
		dst.DrawText(x, y+1+i, line)
	}

	if g.cfg.Preview && g.next != PieceNone {
		dst.DrawText(x, y+6, "Next:")
		s := g.next.Shape(0)
		for r := range s.Height() {
			for c := range s.Width() {
				if s.Filled(c, r) {
					g.drawCell(dst, x+c*cellWidth, y+8+r, blockGlyph, g.next.Color())
				}
			}
		}
	}

	help := []string{"←→  move", "↑   rotate", "↓   soft drop", "SPC drop", "P   pause"}
	for i, line := range help {
		dst.DrawText(x, y+12+i, line)
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StateIdle:
		dst.DrawMessageBox("BLOCK STACK", "Press ENTER to start")
	case StatePaused:
		dst.DrawMessageBox("PAUSED", "Press P to resume")
	case StateGameOver:
		dst.DrawMessageBox("GAME OVER", fmt.Sprintf("Score: %d  |  R restart  B menu", g.score))
	}
}

package sim

import (
	"math"

	"github.com/vovakirdan/breaktime/internal/core"
	"github.com/vovakirdan/breaktime/internal/games/jumper"
	"github.com/vovakirdan/breaktime/internal/games/stacker"
	"github.com/vovakirdan/breaktime/internal/registry"
)

// Bot chooses the input for the next tick of the game it was built for.
// Bots may also act on the game directly between ticks.
type Bot interface {
	Act() core.InputFrame
}

// NewBot returns the built-in autoplayer for g, or nil if there is none.
func NewBot(g registry.Game) Bot {
	switch game := g.(type) {
	case *jumper.Game:
		return &JumperBot{game: game}
	case *stacker.Game:
		return &StackerBot{game: game}
	}
	return nil
}

// JumperBot steers toward the platform it expects to land on next.
type JumperBot struct {
	game *jumper.Game
}

// deadZone is the horizontal error, in world units, the jumper bot accepts
// without steering.
const deadZone = 4

// Act implements Bot.
func (b *JumperBot) Act() core.InputFrame {
	in := core.NewInputFrame()
	target, ok := b.target()
	if !ok {
		return in
	}

	cfg := b.game.Config()
	p := b.game.Player()
	center := p.X + cfg.Player.Size/2
	goal := target.X + cfg.Platforms.Width/2

	dx := wrappedDelta(center, goal, cfg.World.Width+cfg.Player.Size)
	// Brake early enough to stop over the goal.
	stopping := p.VX * p.VX / (2 * cfg.Physics.Accel)
	switch {
	case dx > deadZone && !(p.VX > 0 && stopping >= dx):
		in.Hold(core.ActionRight)
	case dx < -deadZone && !(p.VX < 0 && stopping >= -dx):
		in.Hold(core.ActionLeft)
	}
	return in
}

// target picks the highest platform the player can still reach: anything
// below the feet while falling, or up to the remaining rise while rising.
func (b *JumperBot) target() (jumper.Platform, bool) {
	cfg := b.game.Config()
	p := b.game.Player()
	feet := p.Y + cfg.Player.Size

	reach := 0.0
	if p.VY < 0 {
		reach = p.VY * p.VY / (2 * cfg.Physics.Gravity)
	}
	// Leave a margin so the bot does not chase rungs at the very apex.
	limit := feet - reach*0.9

	var best jumper.Platform
	found := false
	for _, plat := range b.game.Platforms() {
		if plat.Y < limit {
			continue
		}
		if p.VY >= 0 && plat.Y < feet {
			continue
		}
		if !found || plat.Y < best.Y {
			best, found = plat, true
		}
	}
	return best, found
}

// wrappedDelta returns the signed shortest horizontal distance from a to b
// on a wrapping axis of the given period.
func wrappedDelta(a, b, period float64) float64 {
	d := math.Mod(b-a, period)
	switch {
	case d > period/2:
		d -= period
	case d < -period/2:
		d += period
	}
	return d
}

// StackerBot places every piece at the position a greedy board evaluation
// prefers, then hard drops it.
type StackerBot struct {
	game *stacker.Game
}

// Evaluation weights for the greedy placement search.
const (
	weightHeight = -0.51
	weightLines  = 0.76
	weightHoles  = -0.36
	weightBumpy  = -0.18
)

// Act implements Bot. It drives the game through HandleAction and lets the
// tick itself apply gravity to the next piece.
func (b *StackerBot) Act() core.InputFrame {
	g := b.game
	if g.State().Phase != stacker.StateRunning {
		return core.NewInputFrame()
	}

	rot, x, ok := b.plan()
	if ok {
		for range rot {
			g.HandleAction(core.ActionUp)
		}
		for p := g.Piece(); p.X < x; p = g.Piece() {
			if !g.Move(1, 0) {
				break
			}
		}
		for p := g.Piece(); p.X > x; p = g.Piece() {
			if !g.Move(-1, 0) {
				break
			}
		}
	}
	g.HandleAction(core.ActionJump)
	return core.NewInputFrame()
}

// plan returns the rotation count and column of the best placement for the
// active piece.
func (b *StackerBot) plan() (rot, x int, ok bool) {
	board := b.game.Board()
	piece := b.game.Piece()

	best := math.Inf(-1)
	for r := range piece.Type.Rotations() {
		pr := (piece.Rotation + r) % piece.Type.Rotations()
		if !board.IsValid(piece.Type, piece.X, piece.Y, pr) {
			continue
		}
		for cx := -2; cx < board.Width; cx++ {
			if !board.IsValid(piece.Type, cx, piece.Y, pr) {
				continue
			}
			y := piece.Y
			for board.IsValid(piece.Type, cx, y+1, pr) {
				y++
			}
			trial := board.Clone()
			trial.Stamp(piece.Type, cx, y, pr)
			if s := evaluate(trial); s > best {
				best, rot, x, ok = s, r, cx, true
			}
		}
	}
	return rot, x, ok
}

// evaluate scores a board after a placement; ClearLines mutates it.
func evaluate(b *stacker.Board) float64 {
	lines := b.ClearLines()

	height, bump := 0, 0
	prev := -1
	for x := range b.Width {
		h := b.ColumnHeight(x)
		height += h
		if prev >= 0 {
			bump += abs(h - prev)
		}
		prev = h
	}
	return weightHeight*float64(height) +
		weightLines*float64(lines) +
		weightHoles*float64(b.Holes()) +
		weightBumpy*float64(bump)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

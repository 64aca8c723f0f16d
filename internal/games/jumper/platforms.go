package jumper

import "github.com/vovakirdan/breaktime/internal/core"

// Platform is one rung of the ladder. IDs come from a wrapping counter and
// are unique among live platforms.
type Platform struct {
	ID   uint32
	X, Y float64
}

// Camera is the top edge of the visible window in world units. It only moves
// up (Y never increases during a session).
type Camera struct {
	Y float64
}

// buildLadder creates the starting platform under the player and the
// initial rungs above it.
func (g *Game) buildLadder() {
	pc := g.cfg.Platforms
	base := g.cfg.World.Height - pc.StartOffset

	g.platforms = make([]Platform, 0, pc.InitialCount+pc.BatchSize)
	g.nextID = 0
	g.addPlatform((g.cfg.World.Width-pc.Width)/2, base)
	for i := 1; i < pc.InitialCount; i++ {
		g.addPlatform(g.randomX(), base-g.rungOffset(i))
	}
}

// extendLadder appends a batch of rungs above the highest one once it comes
// within a screen of the camera.
func (g *Game) extendLadder() {
	highest := g.highestY()
	if highest <= g.camera.Y-g.cfg.World.Height {
		return
	}
	for i := 1; i <= g.cfg.Platforms.BatchSize; i++ {
		g.addPlatform(g.randomX(), highest-g.rungOffset(i))
	}
}

// prune drops platforms that fell too far below the visible window.
func (g *Game) prune() {
	limit := g.camera.Y + g.cfg.World.Height + g.cfg.Camera.PruneMargin
	kept := g.platforms[:0]
	for _, p := range g.platforms {
		if p.Y <= limit {
			kept = append(kept, p)
		}
	}
	clear(g.platforms[len(kept):])
	g.platforms = kept
}

func (g *Game) addPlatform(x, y float64) {
	g.platforms = append(g.platforms, Platform{ID: g.nextID, X: x, Y: y})
	g.nextID++
}

// highestY returns the smallest platform Y, or the camera when there are none.
func (g *Game) highestY() float64 {
	if len(g.platforms) == 0 {
		return g.camera.Y
	}
	highest := g.platforms[0].Y
	for _, p := range g.platforms[1:] {
		highest = min(highest, p.Y)
	}
	return highest
}

func (g *Game) rungOffset(i int) float64 {
	pc := g.cfg.Platforms
	return float64(i)*pc.Spacing + g.rng.Float64()*pc.Jitter
}

func (g *Game) randomX() float64 {
	return g.rng.Float64() * (g.cfg.World.Width - g.cfg.Platforms.Width)
}

func (g *Game) platformRect(p Platform) core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: g.cfg.Platforms.Width, H: g.cfg.Platforms.Height}
}

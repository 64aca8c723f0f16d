package jumper

import (
	"github.com/vovakirdan/breaktime/internal/config"
	"github.com/vovakirdan/breaktime/internal/core"
)

// Player is the jumping character. (X, Y) is the top-left of its square
// hitbox in world units; Y grows downward.
type Player struct {
	X, Y     float64
	VX, VY   float64
	OnGround bool
}

// Bounds returns the player's hitbox.
func (p Player) Bounds(size float64) core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: size, H: size}
}

// WrapX moves an object that left the world through one side to the other.
// Exiting right by any amount re-enters fully off-screen on the left, so
// x = width+5 with size 30 becomes -25.
func WrapX(x, size, width float64) float64 {
	switch {
	case x > width:
		return x - (width + size)
	case x+size < 0:
		return x + width + size
	default:
		return x
	}
}

// steer applies horizontal acceleration from the held directions, or
// friction when neither is held.
func steer(vx float64, left, right bool, phys config.JumperPhysics) float64 {
	if left {
		vx = max(vx-phys.Accel, -phys.MaxSpeed)
	}
	if right {
		vx = min(vx+phys.Accel, phys.MaxSpeed)
	}
	if !left && !right {
		vx *= phys.Friction
	}
	return vx
}

// landsOn reports whether a falling player's feet are inside the platform's
// top band while the two overlap horizontally.
func landsOn(p Player, size float64, plat core.RectF, tolerance float64) bool {
	if p.VY <= 0 {
		return false
	}
	if !p.Bounds(size).OverlapsX(plat) {
		return false
	}
	feet := p.Y + size
	return feet > plat.Y && feet < plat.Bottom()+tolerance
}

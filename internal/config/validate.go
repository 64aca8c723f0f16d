package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid value")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

// Validate checks that the platformer config describes a playable world.
func (c JumperConfig) Validate() error {
	switch {
	case c.TickMillis <= 0:
		return invalid("tick_ms must be positive, got %d", c.TickMillis)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return invalid("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	case c.Physics.Gravity <= 0:
		return invalid("gravity must be positive, got %g", c.Physics.Gravity)
	case c.Physics.JumpImpulse >= 0:
		return invalid("jump_impulse must be negative (up), got %g", c.Physics.JumpImpulse)
	case c.Physics.Friction < 0 || c.Physics.Friction > 1:
		return invalid("friction must be in [0, 1], got %g", c.Physics.Friction)
	case c.Player.Size <= 0 || c.Player.Size >= c.World.Width:
		return invalid("player size must be in (0, world width), got %g", c.Player.Size)
	case c.Platforms.Width <= 0 || c.Platforms.Width >= c.World.Width:
		return invalid("platform width must be in (0, world width), got %g", c.Platforms.Width)
	case c.Platforms.Height <= 0:
		return invalid("platform height must be positive, got %g", c.Platforms.Height)
	case c.Platforms.Spacing <= 0 || c.Platforms.Jitter < 0:
		return invalid("platform spacing must be positive and jitter non-negative")
	case c.Platforms.BatchSize <= 0 || c.Platforms.InitialCount <= 0:
		return invalid("platform batch_size and initial_count must be positive")
	}

	// A rung that is higher than the jump apex can never be reached.
	apex := c.Physics.JumpImpulse * c.Physics.JumpImpulse / (2 * c.Physics.Gravity)
	if gap := c.Platforms.Spacing + c.Platforms.Jitter; gap >= apex {
		return invalid("platform gap %g exceeds jump height %g", gap, apex)
	}
	return nil
}

// Smallest board on which every piece spawns. Pieces are anchored at column
// W/2-1, so the four-wide I piece needs W-(W/2-1) >= 4, that is W >= 5.
const (
	MinBoardWidth  = 5
	MinBoardHeight = 4
)

// Validate checks that the falling-block config is playable.
func (c StackerConfig) Validate() error {
	switch {
	case c.Board.Width < MinBoardWidth || c.Board.Height < MinBoardHeight:
		return invalid("board must be at least %dx%d, got %dx%d",
			MinBoardWidth, MinBoardHeight, c.Board.Width, c.Board.Height)
	case c.Scoring.PointsPerLine <= 0:
		return invalid("points_per_line must be positive, got %d", c.Scoring.PointsPerLine)
	case c.Scoring.LinesPerLevel <= 0:
		return invalid("lines_per_level must be positive, got %d", c.Scoring.LinesPerLevel)
	case c.Timing.MinIntervalMs <= 0:
		return invalid("min_interval_ms must be positive, got %d", c.Timing.MinIntervalMs)
	case c.Timing.BaseIntervalMs < c.Timing.MinIntervalMs:
		return invalid("base_interval_ms %d is below min_interval_ms %d", c.Timing.BaseIntervalMs, c.Timing.MinIntervalMs)
	case c.Timing.LevelStepMs < 0:
		return invalid("level_step_ms must not be negative, got %d", c.Timing.LevelStepMs)
	}
	return nil
}

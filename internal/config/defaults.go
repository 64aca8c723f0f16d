package config

import (
	_ "embed"
)

//go:embed defaults/jumper.yaml
var defaultJumperYAML []byte

//go:embed defaults/stacker.yaml
var defaultStackerYAML []byte

// DefaultJumperConfig returns the built-in platformer configuration.
func DefaultJumperConfig() JumperConfig {
	return JumperConfig{
		TickMillis: 16,
		World: JumperWorld{
			Width:  400,
			Height: 600,
		},
		Physics: JumperPhysics{
			Gravity:     0.35,
			JumpImpulse: -18,
			Accel:       0.5,
			MaxSpeed:    8,
			Friction:    0.85,
		},
		Player: JumperPlayer{
			Size:        30,
			StartOffset: 200,
		},
		Platforms: JumperPlatforms{
			Width:            80,
			Height:           15,
			LandingTolerance: 10,
			StartOffset:      100,
			InitialCount:     100,
			Spacing:          100,
			Jitter:           50,
			BatchSize:        15,
		},
		Camera: JumperCamera{
			LookAhead:      0.3,
			PruneMargin:    200,
			GameOverMargin: 100,
		},
	}
}

// DefaultStackerConfig returns the built-in falling-block configuration.
func DefaultStackerConfig() StackerConfig {
	return StackerConfig{
		Board: StackerBoard{
			Width:  10,
			Height: 20,
		},
		Scoring: StackerScoring{
			PointsPerLine: 100,
			LinesPerLevel: 10,
		},
		Timing: StackerTiming{
			BaseIntervalMs: 1000,
			LevelStepMs:    100,
			MinIntervalMs:  100,
		},
		Preview: true,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "jumper":
		return defaultJumperYAML
	case "stacker":
		return defaultStackerYAML
	default:
		return nil
	}
}

// Package config provides YAML-based game configuration loading and
// difficulty presets for the breaktime games.
package config

import (
	"fmt"
	"strings"
	"time"
)

// JumperConfig contains all configuration for the vertical platformer.
type JumperConfig struct {
	TickMillis int             `yaml:"tick_ms"`
	World      JumperWorld     `yaml:"world"`
	Physics    JumperPhysics   `yaml:"physics"`
	Player     JumperPlayer    `yaml:"player"`
	Platforms  JumperPlatforms `yaml:"platforms"`
	Camera     JumperCamera    `yaml:"camera"`
}

// JumperWorld defines the simulated playfield in world units.
type JumperWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// JumperPhysics defines per-tick kinematics.
type JumperPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"`
	Accel       float64 `yaml:"accel"`
	MaxSpeed    float64 `yaml:"max_speed"`
	Friction    float64 `yaml:"friction"`
}

// JumperPlayer defines the player's hitbox and spawn point.
type JumperPlayer struct {
	Size        float64 `yaml:"size"`
	StartOffset float64 `yaml:"start_offset"`
}

// JumperPlatforms defines platform geometry and procedural generation.
type JumperPlatforms struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	LandingTolerance float64 `yaml:"landing_tolerance"`
	StartOffset      float64 `yaml:"start_offset"`
	InitialCount     int     `yaml:"initial_count"`
	Spacing          float64 `yaml:"spacing"`
	Jitter           float64 `yaml:"jitter"`
	BatchSize        int     `yaml:"batch_size"`
}

// JumperCamera defines scrolling and culling distances.
type JumperCamera struct {
	LookAhead      float64 `yaml:"look_ahead"`
	PruneMargin    float64 `yaml:"prune_margin"`
	GameOverMargin float64 `yaml:"game_over_margin"`
}

// TickInterval returns the fixed simulation interval.
func (c JumperConfig) TickInterval() time.Duration {
	return time.Duration(c.TickMillis) * time.Millisecond
}

// StackerConfig contains all configuration for the falling-block game.
type StackerConfig struct {
	Board   StackerBoard   `yaml:"board"`
	Scoring StackerScoring `yaml:"scoring"`
	Timing  StackerTiming  `yaml:"timing"`
	Preview bool           `yaml:"preview"`
}

// StackerBoard defines the grid size in cells.
type StackerBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// StackerScoring defines line-clear rewards and level progression.
type StackerScoring struct {
	PointsPerLine int `yaml:"points_per_line"`
	LinesPerLevel int `yaml:"lines_per_level"`
}

// StackerTiming defines the level-dependent gravity interval.
type StackerTiming struct {
	BaseIntervalMs int `yaml:"base_interval_ms"`
	LevelStepMs    int `yaml:"level_step_ms"`
	MinIntervalMs  int `yaml:"min_interval_ms"`
}

// Interval returns the descent interval for a level:
// max(min, base - (level-1)*step).
func (t StackerTiming) Interval(level int) time.Duration {
	ms := t.BaseIntervalMs - (level-1)*t.LevelStepMs
	if ms < t.MinIntervalMs {
		ms = t.MinIntervalMs
	}
	return time.Duration(ms) * time.Millisecond
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset parses a preset name. Empty input yields DifficultyNormal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return DifficultyNormal, fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

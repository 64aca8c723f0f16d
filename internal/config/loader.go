package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadJumper loads the platformer configuration and applies a difficulty preset.
// Search order: customPath -> ~/.breaktime/configs/jumper.yaml -> ./configs/jumper.yaml -> embedded default
func LoadJumper(customPath string, preset DifficultyPreset) (JumperConfig, error) {
	cfg, err := load("jumper", customPath, DefaultJumperConfig(), defaultJumperYAML)
	if err != nil {
		return cfg, err
	}
	ApplyJumperPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadStacker loads the falling-block configuration and applies a difficulty preset.
// Search order: customPath -> ~/.breaktime/configs/stacker.yaml -> ./configs/stacker.yaml -> embedded default
func LoadStacker(customPath string, preset DifficultyPreset) (StackerConfig, error) {
	cfg, err := load("stacker", customPath, DefaultStackerConfig(), defaultStackerYAML)
	if err != nil {
		return cfg, err
	}
	ApplyStackerPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Check loads and validates the config gameID would use with the given path
// and difficulty. Hosts call it before play so a bad file is reported instead
// of silently replaced by defaults. Games without a config always pass.
func Check(gameID, customPath, difficulty string) error {
	preset, err := ParsePreset(difficulty)
	if err != nil {
		return err
	}
	switch gameID {
	case "jumper":
		_, err = LoadJumper(customPath, preset)
	case "stacker":
		_, err = LoadStacker(customPath, preset)
	}
	return err
}

// load decodes the first readable config on the search path over the hardcoded
// defaults, so partial files only override the keys they mention.
// A custom path that cannot be read or parsed is an error; the implicit
// locations are skipped silently.
func load[T any](gameID, customPath string, defaults T, embedded []byte) (T, error) {
	if customPath != "" {
		cfg := defaults
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := gameID + ".yaml"
	candidates := []string{filepath.Join("configs", filename)}
	if userPath := userConfigPath(filename); userPath != "" {
		candidates = append([]string{userPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := defaults
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults, nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breaktime", "configs", filename)
}

// ApplyJumperPreset scales rung spacing and gravity for a difficulty preset.
// Normal leaves the config untouched.
func ApplyJumperPreset(cfg *JumperConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Platforms.Spacing *= 0.8
		cfg.Platforms.Jitter *= 0.8
		cfg.Physics.Gravity *= 0.9
	case DifficultyHard:
		cfg.Platforms.Spacing *= 1.15
		cfg.Platforms.Jitter *= 1.1
		cfg.Physics.Gravity *= 1.1
	}
}

// ApplyStackerPreset adjusts the descent timing for a difficulty preset.
// Normal leaves the config untouched.
func ApplyStackerPreset(cfg *StackerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.BaseIntervalMs = cfg.Timing.BaseIntervalMs * 5 / 4
		cfg.Timing.LevelStepMs = cfg.Timing.LevelStepMs * 4 / 5
	case DifficultyHard:
		cfg.Timing.BaseIntervalMs = cfg.Timing.BaseIntervalMs * 3 / 4
		cfg.Timing.MinIntervalMs = cfg.Timing.MinIntervalMs * 3 / 4
	}
}
